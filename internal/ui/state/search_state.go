package state

import (
	"errors"
	"fmt"

	"weathersearch/internal/domain"
)

var (
	// ErrRowOutOfRange is returned when a row index has no backing data
	ErrRowOutOfRange = errors.New("row index out of range")
	// ErrNoTemplate is returned when no template is registered for a row kind
	ErrNoTemplate = errors.New("no template for row kind")
)

// Kind identifies which variant a SearchState holds
type Kind int

const (
	Empty Kind = iota
	Loading
	NoResults
	Results
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case NoResults:
		return "no_results"
	case Results:
		return "results"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RowKind selects the visual template for a row, independent of its data
type RowKind int

const (
	RowNone RowKind = iota
	RowNoResults
	RowLoading
	RowResult
)

func (k RowKind) String() string {
	switch k {
	case RowNone:
		return "none"
	case RowNoResults:
		return "no_results"
	case RowLoading:
		return "loading"
	case RowResult:
		return "result"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// RowTemplate turns row data into displayable content. Data is nil for
// every row kind except RowResult.
type RowTemplate interface {
	Configure(data *domain.CityWeather) string
}

// Templates resolves the template for a row kind
type Templates interface {
	Template(kind RowKind) (RowTemplate, bool)
}

// RenderedRow is a row ready for the presentation layer
type RenderedRow struct {
	Kind    RowKind
	Data    *domain.CityWeather
	Content string
}

// SearchState is the screen's search state: exactly one of Empty, Loading,
// NoResults or Results. The zero value is Empty. A Results state always
// holds at least one item.
type SearchState struct {
	kind  Kind
	items []domain.CityWeather
}

// NewEmpty returns the state before any search was submitted
func NewEmpty() SearchState { return SearchState{kind: Empty} }

// NewLoading returns the state while a lookup is in flight
func NewLoading() SearchState { return SearchState{kind: Loading} }

// NewNoResults returns the state after a lookup matched nothing or failed
func NewNoResults() SearchState { return SearchState{kind: NoResults} }

// NewResults returns a Results state holding a copy of items, or NoResults
// when items is empty.
func NewResults(items []domain.CityWeather) SearchState {
	if len(items) == 0 {
		return NewNoResults()
	}
	cp := make([]domain.CityWeather, len(items))
	copy(cp, items)
	return SearchState{kind: Results, items: cp}
}

// Kind returns the active variant
func (s SearchState) Kind() Kind { return s.kind }

// Items returns a copy of the results; nil for every other variant
func (s SearchState) Items() []domain.CityWeather {
	if s.kind != Results {
		return nil
	}
	cp := make([]domain.CityWeather, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s SearchState) String() string {
	if s.kind == Results {
		return fmt.Sprintf("results(%d)", len(s.items))
	}
	return s.kind.String()
}

// RowCount returns how many rows the list shows for this state
func (s SearchState) RowCount() int {
	switch s.kind {
	case NoResults, Loading:
		return 1
	case Results:
		return len(s.items)
	default:
		return 0
	}
}

// RowKind returns the template selector for a row. The index is not
// checked; callers stay below RowCount.
func (s SearchState) RowKind(row int) RowKind {
	switch s.kind {
	case NoResults:
		return RowNoResults
	case Loading:
		return RowLoading
	case Results:
		return RowResult
	default:
		return RowNone
	}
}

// RowData returns the record behind a row: nil for every state but Results,
// where an index outside the items is an error.
func (s SearchState) RowData(row int) (*domain.CityWeather, error) {
	if s.kind != Results {
		return nil, nil
	}
	if row < 0 || row >= len(s.items) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, row, len(s.items))
	}
	item := s.items[row]
	return &item, nil
}

// RenderRow resolves the template for the row's kind and configures it with
// the row's data.
func (s SearchState) RenderRow(row int, templates Templates) (RenderedRow, error) {
	if s.kind == Empty {
		return RenderedRow{}, fmt.Errorf("%w: row %d of 0", ErrRowOutOfRange, row)
	}

	kind := s.RowKind(row)
	data, err := s.RowData(row)
	if err != nil {
		return RenderedRow{}, err
	}

	tpl, ok := templates.Template(kind)
	if !ok {
		return RenderedRow{}, fmt.Errorf("%w: %s", ErrNoTemplate, kind)
	}

	return RenderedRow{
		Kind:    kind,
		Data:    data,
		Content: tpl.Configure(data),
	}, nil
}
