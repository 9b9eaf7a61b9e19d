package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Render centres content in a bordered box on an otherwise blank screen.
// Lines that do not fit are cut and replaced by a hint.
func (pr *PopupRenderer) Render(content string, width, height int) string {
	maxLines := height - 6 // border, padding and footer
	if maxLines < 1 {
		maxLines = 1
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], pr.styles.Dim.Render("…"))
	}

	body := strings.Join(lines, "\n") + "\n\n" + pr.styles.Dim.Render("esc/q to close")
	popup := pr.styles.Popup.Render(body)
	if w := lipgloss.Width(popup); width > 0 && w > width {
		popup = lipgloss.NewStyle().MaxWidth(width).Render(popup)
	}

	if width <= 0 || height <= 0 {
		return popup
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}
