package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"weathersearch/internal/domain"
	"weathersearch/internal/ui/controller"
	"weathersearch/internal/ui/state"
	"weathersearch/internal/ui/views"
	"weathersearch/internal/weather"
)

func newSearchCommand(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <city...>",
		Short: "Look up a city once and print the matches",
		Long: `Search runs a single lookup without the interactive screen and prints one
row per matching city, or "No results".

Examples:
  weathersearch search London
  weathersearch search --units imperial New York
  weathersearch search --json Paris`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, strings.Join(args, " "), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print matches as JSON")

	return cmd
}

// rowCounter is the presenter for headless runs; output happens once the
// lookup settles
type rowCounter struct {
	renders int
}

func (p *rowCounter) RequestFullRender() {
	p.renders++
}

// trackedService remembers the error of the last call so a headless run can
// report it after the screen state has collapsed to NoResults
type trackedService struct {
	weather.Service
	err error
}

func (s *trackedService) NewSearchRequest(city string) (*weather.SearchRequest, error) {
	req, err := s.Service.NewSearchRequest(city)
	s.err = err
	return req, err
}

func (s *trackedService) Execute(ctx context.Context, req *weather.SearchRequest) ([]domain.CityWeather, error) {
	items, err := s.Service.Execute(ctx, req)
	s.err = err
	return items, err
}

func runSearch(cmd *cobra.Command, opts *options, query string, asJSON bool) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	service := &trackedService{Service: a.client}
	ctrl := controller.New(cmdContext(cmd), service, &rowCounter{},
		controller.WithLogger(a.logger),
		controller.WithBus(a.bus))
	defer ctrl.Close()

	if lookup := ctrl.OnSearchSubmitted(query); lookup != nil {
		if msg, ok := lookup().(controller.LookupResultMsg); ok {
			ctrl.HandleLookupResult(msg)
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		err = writeJSON(out, ctrl.State())
	} else {
		err = writeRows(out, ctrl.State(), a.cfg.UnitSystem())
	}
	if err != nil {
		return err
	}

	if service.err != nil {
		return fmt.Errorf("search %q failed: %w", query, service.err)
	}
	return nil
}

func writeJSON(w io.Writer, s state.SearchState) error {
	items := s.Items()
	if items == nil {
		items = []domain.CityWeather{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func writeRows(w io.Writer, s state.SearchState, units domain.Units) error {
	templates := views.NewRowTemplates(views.NewStyles(), units, nil)
	for i := 0; i < s.RowCount(); i++ {
		row, err := s.RenderRow(i, templates)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.Content, " ")); err != nil {
			return err
		}
	}
	return nil
}
