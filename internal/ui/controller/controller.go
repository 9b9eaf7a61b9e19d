package controller

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"weathersearch/internal/domain"
	"weathersearch/internal/eventbus"
	"weathersearch/internal/ui/state"
	"weathersearch/internal/weather"
)

// Presenter re-pulls every row from the controller's state
type Presenter interface {
	RequestFullRender()
}

// LookupResultMsg carries a finished lookup back to the update loop
type LookupResultMsg struct {
	Seq   uint64
	Query string
	Items []domain.CityWeather
	Err   error
}

// Controller owns the search state and drives it from submitted queries and
// lookup completions. It must only be used from the Bubble Tea update loop.
type Controller struct {
	service   weather.Service
	presenter Presenter
	bus       eventbus.EventBus
	logger    *slog.Logger

	state state.SearchState
	query string

	// ctx lives as long as the screen; lookups derive from it
	ctx    context.Context
	cancel context.CancelFunc

	seq            uint64
	cancelInFlight context.CancelFunc
}

// Option customizes a Controller
type Option func(*Controller)

// WithBus publishes search lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the controller logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithInitialState overrides the starting state
func WithInitialState(s state.SearchState) Option {
	return func(c *Controller) { c.state = s }
}

// New creates a controller. The screen starts in NoResults.
func New(ctx context.Context, service weather.Service, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		service:   service,
		presenter: presenter,
		logger:    slog.Default(),
		state:     state.NewNoResults(),
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current search state
func (c *Controller) State() state.SearchState {
	return c.state
}

// Query returns the last submitted query
func (c *Controller) Query() string {
	return c.query
}

// Seq identifies the most recent lookup. Events carrying an older sequence
// describe work that has been superseded.
func (c *Controller) Seq() uint64 {
	return c.seq
}

// OnSearchSubmitted switches to Loading and returns the command that runs
// the lookup. Blank queries are ignored. A request that fails validation
// goes straight to NoResults and returns nil.
func (c *Controller) OnSearchSubmitted(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" || c.ctx.Err() != nil {
		return nil
	}

	c.seq++
	seq := c.seq
	c.query = query
	c.stopInFlight()

	c.setState(state.NewLoading())

	req, err := c.service.NewSearchRequest(query)
	if err != nil {
		c.logger.Error("search request rejected",
			slog.String("query", query),
			slog.Any("error", err))
		c.publish(domain.SearchFailedEvent{Seq: seq, Query: query, Err: err})
		c.setState(state.NewNoResults())
		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelInFlight = cancel
	c.publish(domain.SearchStartedEvent{Seq: seq, Query: query})
	c.logger.Info("search started", slog.String("query", query), slog.Uint64("seq", seq))

	service := c.service
	return func() tea.Msg {
		items, err := service.Execute(ctx, req)
		return LookupResultMsg{Seq: seq, Query: query, Items: items, Err: err}
	}
}

// HandleLookupResult applies a completion and reports whether it was used.
// Completions for superseded lookups, or arriving after Close, are dropped.
func (c *Controller) HandleLookupResult(msg LookupResultMsg) bool {
	if c.ctx.Err() != nil {
		c.discard(msg, "screen closed")
		return false
	}
	if msg.Seq != c.seq {
		c.discard(msg, "superseded")
		return false
	}

	c.stopInFlight()

	switch {
	case msg.Err != nil:
		c.logger.Error("search failed",
			slog.String("query", msg.Query),
			slog.Any("error", msg.Err))
		c.publish(domain.SearchFailedEvent{Seq: msg.Seq, Query: msg.Query, Err: msg.Err})
		c.setState(state.NewNoResults())
	case len(msg.Items) == 0:
		c.logger.Info("search matched nothing", slog.String("query", msg.Query))
		c.publish(domain.SearchCompletedEvent{Seq: msg.Seq, Query: msg.Query})
		c.setState(state.NewNoResults())
	default:
		c.logger.Info("search completed",
			slog.String("query", msg.Query),
			slog.Int("matches", len(msg.Items)))
		c.publish(domain.SearchCompletedEvent{Seq: msg.Seq, Query: msg.Query, Matches: len(msg.Items)})
		c.setState(state.NewResults(msg.Items))
	}
	return true
}

// Clear abandons any in-flight lookup and returns to Empty
func (c *Controller) Clear() {
	if c.ctx.Err() != nil {
		return
	}
	c.seq++
	c.query = ""
	c.stopInFlight()
	c.publish(domain.SearchClearedEvent{})
	c.setState(state.NewEmpty())
}

// Close ends the screen's lifetime. Pending lookups are cancelled and their
// completions ignored.
func (c *Controller) Close() {
	c.stopInFlight()
	c.cancel()
}

func (c *Controller) setState(s state.SearchState) {
	c.state = s
	if c.presenter != nil {
		c.presenter.RequestFullRender()
	}
}

func (c *Controller) stopInFlight() {
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *Controller) discard(msg LookupResultMsg, reason string) {
	c.logger.Debug("dropping lookup result",
		slog.String("query", msg.Query),
		slog.Uint64("seq", msg.Seq),
		slog.String("reason", reason))
	c.publish(domain.SearchDiscardedEvent{Seq: msg.Seq, Query: msg.Query, Reason: reason})
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
