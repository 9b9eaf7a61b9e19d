package weather

import (
	"context"

	"weathersearch/internal/domain"
)

// Service looks up current weather for cities matching a name.
//
// NewSearchRequest validates synchronously; Execute performs the network
// round trip and honours ctx cancellation.
type Service interface {
	NewSearchRequest(city string) (*SearchRequest, error)
	Execute(ctx context.Context, req *SearchRequest) ([]domain.CityWeather, error)
}

// SearchRequest is a validated city lookup
type SearchRequest struct {
	City  string
	Units domain.Units
	Lang  string
	Limit int
}
