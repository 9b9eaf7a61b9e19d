package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"weathersearch/internal/domain"
	"weathersearch/internal/ui/state"
)

// RowTemplates is the template registry for the search list
type RowTemplates struct {
	noResults *NoResultsRow
	loading   *LoadingRow
	result    *ResultRow
}

// NewRowTemplates builds the three row templates. frame supplies the
// spinner glyph for the loading row and may be nil.
func NewRowTemplates(styles *Styles, units domain.Units, frame func() string) *RowTemplates {
	return &RowTemplates{
		noResults: &NoResultsRow{styles: styles},
		loading:   &LoadingRow{styles: styles, frame: frame},
		result:    &ResultRow{styles: styles, units: units},
	}
}

// Template implements state.Templates
func (t *RowTemplates) Template(kind state.RowKind) (state.RowTemplate, bool) {
	switch kind {
	case state.RowNoResults:
		return t.noResults, true
	case state.RowLoading:
		return t.loading, true
	case state.RowResult:
		return t.result, true
	default:
		return nil, false
	}
}

// SetWidth bounds result rows to the available width
func (t *RowTemplates) SetWidth(width int) {
	t.result.width = width
}

// NoResultsRow renders the single row shown when nothing matched
type NoResultsRow struct {
	styles *Styles
}

func (r *NoResultsRow) Configure(*domain.CityWeather) string {
	return r.styles.Placeholder.Render("No results")
}

// LoadingRow renders the single row shown while a lookup is in flight
type LoadingRow struct {
	styles *Styles
	frame  func() string
}

func (r *LoadingRow) Configure(*domain.CityWeather) string {
	glyph := "…"
	if r.frame != nil {
		glyph = r.frame()
	}
	return r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching", strings.TrimSpace(glyph)))
}

// ResultRow renders one matched city on a single line
type ResultRow struct {
	styles *Styles
	units  domain.Units
	width  int
}

func (r *ResultRow) Configure(data *domain.CityWeather) string {
	if data == nil {
		return ""
	}

	name := r.styles.CityName.Render(data.Name)
	if data.Country != "" {
		name += r.styles.Country.Render(", " + data.Country)
	}

	temp := lipgloss.NewStyle().
		Foreground(lipgloss.Color(TemperatureColor(toCelsius(data.Temperature, r.units)))).
		Bold(true).
		Render(FormatTemperature(data.Temperature, r.units))

	condition := r.styles.Condition.Render(fmt.Sprintf("%s %s", ConditionGlyph(data.Summary, data.IsDaytime()), conditionText(data)))

	details := r.styles.Detail.Render(fmt.Sprintf("humidity %d%%  wind %.1f %s",
		data.Humidity, data.WindSpeed, r.units.SpeedSymbol()))

	line := strings.Join([]string{
		padRight(name, 28),
		padRight(temp, 9),
		padRight(condition, 26),
		details,
	}, " ")

	if r.width > 0 && lipgloss.Width(line) > r.width {
		line = lipgloss.NewStyle().MaxWidth(r.width).Render(line)
	}
	return line
}

// FormatTemperature prints a temperature with its unit symbol
func FormatTemperature(value float64, units domain.Units) string {
	return fmt.Sprintf("%.0f%s", value, units.TemperatureSymbol())
}

// ConditionGlyph maps a condition group to a single display glyph
func ConditionGlyph(summary string, daytime bool) string {
	switch strings.ToLower(summary) {
	case "clear":
		if daytime {
			return "☀"
		}
		return "☾"
	case "clouds":
		return "☁"
	case "rain", "drizzle":
		return "☂"
	case "thunderstorm":
		return "⚡"
	case "snow":
		return "❄"
	case "mist", "fog", "haze", "smoke", "dust", "sand", "ash":
		return "≋"
	default:
		return "·"
	}
}

func conditionText(data *domain.CityWeather) string {
	if data.Description != "" {
		return data.Description
	}
	if data.Summary != "" {
		return strings.ToLower(data.Summary)
	}
	return "unknown"
}

func toCelsius(value float64, units domain.Units) float64 {
	switch units {
	case domain.UnitsImperial:
		return (value - 32) * 5 / 9
	case domain.UnitsStandard:
		return value - 273.15
	default:
		return value
	}
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
