package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	SearchBox     lipgloss.Style
	SearchFocused lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	SelectionBg   lipgloss.Style
	CityName      lipgloss.Style
	Country       lipgloss.Style
	Temperature   lipgloss.Style
	Condition     lipgloss.Style
	Detail        lipgloss.Style
	Placeholder   lipgloss.Style
	Popup         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		CityName:    lipgloss.NewStyle().Bold(true),
		Country:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Temperature: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Condition:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),             // cyan
		Detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
	}
}

// TemperatureColor picks a colour band for a temperature in °C
func TemperatureColor(celsius float64) string {
	switch {
	case celsius <= 0:
		return "39" // blue
	case celsius < 15:
		return "51" // cyan
	case celsius < 25:
		return "78" // green
	case celsius < 32:
		return "214" // yellow
	default:
		return "203" // red
	}
}
