package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"weathersearch/internal/domain"
)

// RenderDetails renders the full report for one city, shown in the pager
func RenderDetails(data domain.CityWeather, units domain.Units) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(data.DisplayName()))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-12s", label)), valueStyle.Render(value)))
	}

	row("Conditions", fmt.Sprintf("%s %s", ConditionGlyph(data.Summary, data.IsDaytime()), conditionText(&data)))
	row("Temperature", FormatTemperature(data.Temperature, units))
	row("Feels like", FormatTemperature(data.FeelsLike, units))
	row("Min / Max", fmt.Sprintf("%s / %s", FormatTemperature(data.TempMin, units), FormatTemperature(data.TempMax, units)))
	row("Humidity", fmt.Sprintf("%d%%", data.Humidity))
	row("Pressure", fmt.Sprintf("%d hPa", data.Pressure))
	row("Wind", fmt.Sprintf("%.1f %s from %s", data.WindSpeed, units.SpeedSymbol(), CompassPoint(data.WindDeg)))
	row("Cloudiness", fmt.Sprintf("%d%%", data.Cloudiness))
	row("Location", fmt.Sprintf("%.4f, %.4f", data.Latitude, data.Longitude))
	if !data.ObservedAt.IsZero() {
		row("Observed", data.ObservedAt.Format(time.RFC1123))
	}
	if data.ID != 0 {
		row("City ID", fmt.Sprintf("%d", data.ID))
	}

	return b.String()
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint converts a bearing in degrees to one of eight compass points
func CompassPoint(deg int) string {
	deg = ((deg % 360) + 360) % 360
	return compassPoints[((deg*2+45)/90)%8]
}
