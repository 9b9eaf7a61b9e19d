package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathersearch/internal/domain"
	"weathersearch/internal/ui/state"
)

func sampleCity() domain.CityWeather {
	return domain.CityWeather{
		ID:          2643743,
		Name:        "London",
		Country:     "GB",
		Latitude:    51.5085,
		Longitude:   -0.1257,
		Summary:     "Clouds",
		Description: "overcast clouds",
		Icon:        "04d",
		Temperature: 12.5,
		FeelsLike:   11.8,
		TempMin:     11,
		TempMax:     14,
		Humidity:    81,
		Pressure:    1012,
		WindSpeed:   4.1,
		WindDeg:     80,
		Cloudiness:  90,
		ObservedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestTemplatesCoverEveryRowKind(t *testing.T) {
	tpl := NewRowTemplates(NewStyles(), domain.UnitsMetric, nil)

	for _, kind := range []state.RowKind{state.RowNoResults, state.RowLoading, state.RowResult} {
		got, ok := tpl.Template(kind)
		assert.True(t, ok, kind.String())
		assert.NotNil(t, got, kind.String())
	}

	_, ok := tpl.Template(state.RowNone)
	assert.False(t, ok)
}

func TestRowContent(t *testing.T) {
	tpl := NewRowTemplates(NewStyles(), domain.UnitsMetric, func() string { return "⠋ " })
	city := sampleCity()

	row, err := state.NewNoResults().RenderRow(0, tpl)
	require.NoError(t, err)
	assert.Contains(t, row.Content, "No results")

	row, err = state.NewLoading().RenderRow(0, tpl)
	require.NoError(t, err)
	assert.Contains(t, row.Content, "⠋ Searching")

	row, err = state.NewResults([]domain.CityWeather{city}).RenderRow(0, tpl)
	require.NoError(t, err)
	assert.Contains(t, row.Content, "London")
	assert.Contains(t, row.Content, ", GB")
	assert.Contains(t, row.Content, "12°C")
	assert.Contains(t, row.Content, "☁ overcast clouds")
	assert.Contains(t, row.Content, "humidity 81%")
	assert.Contains(t, row.Content, "wind 4.1 m/s")
}

func TestLoadingRowWithoutSpinner(t *testing.T) {
	row, err := state.NewLoading().RenderRow(0, NewRowTemplates(NewStyles(), domain.UnitsMetric, nil))
	require.NoError(t, err)
	assert.Contains(t, row.Content, "… Searching")
}

func TestResultRowImperial(t *testing.T) {
	tpl := NewRowTemplates(NewStyles(), domain.UnitsImperial, nil)
	city := sampleCity()
	city.Temperature = 54.5
	city.WindSpeed = 9.2

	row, err := state.NewResults([]domain.CityWeather{city}).RenderRow(0, tpl)
	require.NoError(t, err)
	assert.Contains(t, row.Content, "54°F")
	assert.Contains(t, row.Content, "9.2 mph")
}

func TestResultRowRespectsWidth(t *testing.T) {
	tpl := NewRowTemplates(NewStyles(), domain.UnitsMetric, nil)
	tpl.SetWidth(30)

	row, err := state.NewResults([]domain.CityWeather{sampleCity()}).RenderRow(0, tpl)
	require.NoError(t, err)
	for _, line := range strings.Split(row.Content, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 30)
	}
}

func TestConditionGlyph(t *testing.T) {
	assert.Equal(t, "☀", ConditionGlyph("Clear", true))
	assert.Equal(t, "☾", ConditionGlyph("Clear", false))
	assert.Equal(t, "☂", ConditionGlyph("Drizzle", true))
	assert.Equal(t, "≋", ConditionGlyph("Mist", true))
	assert.Equal(t, "·", ConditionGlyph("Tornado", true))
}

func TestCompassPoint(t *testing.T) {
	cases := map[int]string{0: "N", 44: "NE", 80: "E", 200: "S", 350: "N", -90: "W", 720: "N"}
	for deg, want := range cases {
		assert.Equal(t, want, CompassPoint(deg), "deg %d", deg)
	}
}

func TestRenderDetails(t *testing.T) {
	out := RenderDetails(sampleCity(), domain.UnitsMetric)

	assert.Contains(t, out, "London, GB")
	assert.Contains(t, out, "overcast clouds")
	assert.Contains(t, out, "12°C")
	assert.Contains(t, out, "1012 hPa")
	assert.Contains(t, out, "4.1 m/s from E")
	assert.Contains(t, out, "51.5085, -0.1257")
	assert.Contains(t, out, "2643743")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		total, offset, height int
		start, end            int
	}{
		{total: 3, offset: 0, height: 10, start: 0, end: 3},
		{total: 10, offset: 0, height: 0, start: 0, end: 10},
		{total: 10, offset: 2, height: 4, start: 2, end: 6},
		{total: 10, offset: 9, height: 4, start: 6, end: 10},
		{total: 10, offset: -3, height: 4, start: 0, end: 4},
	}
	for _, tt := range tests {
		start, end := VisibleRange(tt.total, tt.offset, tt.height)
		assert.Equal(t, tt.start, start, "%+v", tt)
		assert.Equal(t, tt.end, end, "%+v", tt)
	}
}

func TestRenderPlaceholderAndStatus(t *testing.T) {
	r := NewRenderer(NewStyles())

	out := r.Render(ViewState{Width: 80, Height: 24, SearchInput: "> ", StatusMessage: "lookup failed", StatusIsError: true})
	assert.Contains(t, out, "weathersearch")
	assert.Contains(t, out, "Type a city name and press Enter")
	assert.Contains(t, out, "lookup failed")
}

func TestRenderRowsWithCursorAndScroll(t *testing.T) {
	r := NewRenderer(NewStyles())
	rows := make([]state.RenderedRow, 5)
	for i := range rows {
		rows[i] = state.RenderedRow{Kind: state.RowResult, Content: string(rune('A' + i))}
	}

	out := r.Render(ViewState{
		Width:          80,
		Rows:           rows,
		SelectedIndex:  2,
		ListFocused:    true,
		ViewportOffset: 1,
		ViewportHeight: 3,
		StateKind:      state.Results,
		Query:          "x",
	})
	assert.Contains(t, out, "▸ C")
	assert.NotContains(t, out, "  A")
	assert.Contains(t, out, "rows 2-4 of 5")
	assert.Contains(t, out, `5 result(s) for "x"`)
}

func TestPopupFitsScreen(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	content := strings.Repeat("line\n", 50)

	out := pr.Render(content, 60, 20)

	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 20)
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "esc/q to close")
}

func TestPopupWithoutSize(t *testing.T) {
	out := NewPopupRenderer(NewStyles()).Render("hello", 0, 0)
	assert.Contains(t, out, "hello")
}
