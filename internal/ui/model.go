package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"weathersearch/internal/config"
	"weathersearch/internal/domain"
	"weathersearch/internal/eventbus"
	"weathersearch/internal/ui/controller"
	"weathersearch/internal/ui/state"
	"weathersearch/internal/ui/views"
	"weathersearch/internal/weather"
)

const statusTimeout = 5 * time.Second

type focus int

const (
	focusSearch focus = iota
	focusList
)

// Model is the city search screen
type Model struct {
	config     *config.Config
	logger     *slog.Logger
	controller *controller.Controller

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	renderer  *views.Renderer
	popups    *views.PopupRenderer
	templates *views.RowTemplates

	// rows is rebuilt from the controller's state on every full render
	rows           []state.RenderedRow
	renderRequests int

	focus          focus
	selected       int
	viewportOffset int
	viewportHeight int
	width          int
	height         int

	statusMessage string
	statusIsError bool
	statusSetAt   time.Time

	inPagerMode bool // tracks if we're currently in pager mode

	// popup holds pager content shown in place when ov could not start
	popup string

	// Program reference for terminal management
	program *tea.Program
	pager   Pager
}

// NewModel creates the search screen. The controller lives until ctx is
// cancelled or the user quits.
func NewModel(ctx context.Context, cfg *config.Config, service weather.Service, logger *slog.Logger, bus eventbus.EventBus) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search for a city"
	input.CharLimit = weather.MaxCityLength
	input.Focus()

	m := &Model{
		config:         cfg,
		logger:         logger,
		input:          input,
		spinner:        spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:           help.New(),
		keys:           defaultKeyMap(),
		renderer:       views.NewRenderer(views.NewStyles()),
		viewportHeight: 20, // Will be updated on first WindowSizeMsg
	}
	m.spinner.Style = m.renderer.Styles().StatusLoading
	m.popups = views.NewPopupRenderer(m.renderer.Styles())
	m.templates = views.NewRowTemplates(m.renderer.Styles(), cfg.UnitSystem(), func() string {
		return m.spinner.View()
	})

	opts := []controller.Option{controller.WithLogger(logger)}
	if bus != nil {
		opts = append(opts, controller.WithBus(bus))
	}
	m.controller = controller.New(ctx, service, m, opts...)
	m.refreshRows()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = &ovPager{program: p}
}

// Controller exposes the screen's controller
func (m *Model) Controller() *controller.Controller {
	return m.controller
}

// RequestFullRender rebuilds every row from the controller's state
func (m *Model) RequestFullRender() {
	m.renderRequests++
	m.selected = 0
	m.viewportOffset = 0
	m.refreshRows()

	if m.focus == focusList && m.controller != nil && m.controller.State().Kind() != state.Results {
		m.focusSearch()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 16
		m.templates.SetWidth(msg.Width - 6)
		m.updateViewportHeight()
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, m.quit()
		}
		if m.popup != "" {
			switch msg.String() {
			case "esc", "q", "i", "enter":
				m.popup = ""
			}
			return m, nil
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateSearch(msg)

	case controller.LookupResultMsg:
		m.controller.HandleLookupResult(msg)
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Only the loading row animates; this is not a state change
		if m.controller.State().Kind() == state.Loading {
			m.refreshRows()
		}
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			m.logger.Error("pager failed", slog.String("content", msg.what), slog.Any("error", msg.err))
			m.popup = msg.content
			return m, m.setStatus(fmt.Sprintf("Could not open %s in pager: %v", msg.what, msg.err), true)
		}
		// RestoreTerminal() should have restored the screen
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.setAt.Equal(m.statusSetAt) {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		seq := m.controller.Seq()
		cmd := m.controller.OnSearchSubmitted(m.input.Value())
		// A new lookup replaces any failure shown for the previous one
		if m.controller.Seq() != seq && m.statusIsError {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, cmd

	case key.Matches(msg, m.keys.Focus):
		if m.controller.State().Kind() == state.Results {
			m.focus = focusList
			m.input.Blur()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.controller.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m, m.quit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.controller.State().Items()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.ensureSelectedVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(items)-1 {
			m.selected++
			m.ensureSelectedVisible()
		}

	case key.Matches(msg, m.keys.Details):
		if m.selected < len(items) {
			item := items[m.selected]
			return m, m.showInPager("details", views.RenderDetails(item, m.config.UnitSystem()))
		}

	case key.Matches(msg, m.keys.Help):
		return m, m.showInPager("help", views.RenderHelpContent())

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.controller.Clear()

	case key.Matches(msg, m.keys.Search), key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Back):
		return m, m.focusSearch()

	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.SearchFailedEvent:
		// A failure for a superseded lookup is not worth showing
		if e.Seq != m.controller.Seq() {
			return nil
		}
		return m.setStatus(failureStatus(e.Err), true)
	}
	return nil
}

// failureStatus turns a lookup error into a short status line
func failureStatus(err error) string {
	switch {
	case weather.IsType(err, weather.ErrTypeConfiguration):
		return "No API key configured (set OPENWEATHER_API_KEY or weather.api_key)"
	case weather.IsType(err, weather.ErrTypeAuthentication):
		return "The weather service rejected the API key"
	case weather.IsType(err, weather.ErrTypeRateLimit):
		return "Rate limited by the weather service, try again shortly"
	case weather.IsType(err, weather.ErrTypeTimeout):
		return "The weather service did not answer in time"
	case weather.IsType(err, weather.ErrTypeNetwork):
		return "Could not reach the weather service"
	case err != nil:
		return fmt.Sprintf("Search failed: %v", err)
	default:
		return "Search failed"
	}
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	m.statusSetAt = time.Now()
	setAt := m.statusSetAt
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{setAt: setAt}
	})
}

func (m *Model) focusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.input.Focus()
}

func (m *Model) quit() tea.Cmd {
	m.controller.Close()
	return tea.Quit
}

// refreshRows re-renders every row of the current state
func (m *Model) refreshRows() {
	if m.controller == nil {
		return
	}
	s := m.controller.State()
	count := s.RowCount()

	rows := make([]state.RenderedRow, 0, count)
	for i := 0; i < count; i++ {
		row, err := s.RenderRow(i, m.templates)
		if err != nil {
			m.logger.Error("failed to render row", slog.Int("row", i), slog.Any("error", err))
			continue
		}
		rows = append(rows, row)
	}
	m.rows = rows

	if m.selected >= len(rows) {
		m.selected = 0
		m.viewportOffset = 0
	}
}

func (m *Model) updateViewportHeight() {
	// Account for padding, title, search box, status and help
	reservedLines := 12
	if !m.config.UI.ShowHelp {
		reservedLines -= 2
	}

	m.viewportHeight = m.height - reservedLines
	if m.viewportHeight < 1 {
		m.viewportHeight = 1
	}

	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	if m.selected < m.viewportOffset {
		m.viewportOffset = m.selected
	}
	if m.selected >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.selected - m.viewportHeight + 1
	}
}

// View renders the screen
func (m *Model) View() string {
	// Bubble Tea keeps drawing while ov owns the terminal
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.popup != "" {
		return m.popups.Render(m.popup, m.width, m.height)
	}

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		SearchInput:    m.input.View(),
		SearchFocused:  m.focus == focusSearch,
		Rows:           m.rows,
		SelectedIndex:  m.selected,
		ListFocused:    m.focus == focusList,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight,
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		Query:          m.controller.Query(),
		StateKind:      m.controller.State().Kind(),
	}
	if m.config.UI.ShowHelp {
		if m.focus == focusList {
			vs.HelpView = m.help.View(listHelp{keys: m.keys})
		} else {
			vs.HelpView = m.help.View(searchHelp{keys: m.keys})
		}
	}

	return m.renderer.Render(vs)
}
