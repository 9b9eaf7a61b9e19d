package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelpContent renders the help screen shown in the pager
func RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	entry := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-10s", key)), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("weathersearch help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search bar"))
	help.WriteString("\n")
	entry("Enter", "Search for the typed city")
	entry("Tab", "Move to the result list")
	entry("Ctrl+L", "Clear the search")
	entry("Esc", "Quit")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Result list"))
	help.WriteString("\n")
	entry("↑/↓, k/j", "Move the cursor")
	entry("Enter, i", "Show details for the selected city")
	entry("Tab, /", "Back to the search bar")
	entry("Esc", "Back to the search bar")
	entry("?", "Show this help")
	entry("q", "Quit")
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Lookup failures are logged and shown as \"No results\"."))
	help.WriteString("\n")

	return help.String()
}
