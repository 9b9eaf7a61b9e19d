package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"weathersearch/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	SearchInput    string // rendered text input
	SearchFocused  bool
	Rows           []state.RenderedRow
	SelectedIndex  int
	ListFocused    bool
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	StatusIsError  bool
	Query          string
	StateKind      state.Kind
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")

	box := r.styles.SearchBox
	if vs.SearchFocused {
		box = r.styles.SearchFocused
	}
	if vs.Width > 8 {
		box = box.Width(vs.Width - 8)
	}
	content.WriteString(box.Render(vs.SearchInput))
	content.WriteString("\n\n")

	content.WriteString(r.renderRows(vs))

	if vs.StatusMessage != "" {
		style := r.styles.Status
		if vs.StatusIsError {
			style = style.Inherit(r.styles.StatusError)
		}
		content.WriteString("\n")
		content.WriteString(style.Render(vs.StatusMessage))
	}

	if vs.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(vs.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("weathersearch")
	var right string
	switch vs.StateKind {
	case state.Results:
		right = fmt.Sprintf("%d result(s) for %q", len(vs.Rows), vs.Query)
	case state.Loading:
		right = fmt.Sprintf("searching %q", vs.Query)
	}
	if right == "" || vs.Width == 0 {
		return logo
	}
	right = r.styles.Dim.Render(right)

	pad := vs.Width - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if pad < 2 {
		return logo
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", pad), right)
}

func (r *Renderer) renderRows(vs ViewState) string {
	if len(vs.Rows) == 0 {
		return r.styles.Placeholder.Render("Type a city name and press Enter")
	}

	start, end := VisibleRange(len(vs.Rows), vs.ViewportOffset, vs.ViewportHeight)

	var b strings.Builder
	for i := start; i < end; i++ {
		row := vs.Rows[i]
		line := row.Content
		if row.Kind == state.RowResult {
			cursor := "  "
			if vs.ListFocused && i == vs.SelectedIndex {
				cursor = "▸ "
				line = r.styles.SelectionBg.Render(line)
			}
			line = cursor + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if start > 0 || end < len(vs.Rows) {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("rows %d-%d of %d", start+1, end, len(vs.Rows))))
	}
	return b.String()
}

// VisibleRange clamps a viewport to the row count. A non-positive height
// shows every row.
func VisibleRange(total, offset, height int) (int, int) {
	if height <= 0 || height >= total {
		return 0, total
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total-height {
		offset = total - height
	}
	return offset, offset + height
}
