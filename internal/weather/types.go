package weather

import (
	"time"

	"weathersearch/internal/domain"
)

// findResponse is the body of GET /data/2.5/find
type findResponse struct {
	Message string      `json:"message"`
	Count   int         `json:"count"`
	List    []findEntry `json:"list"`
}

type findEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Dt    int64  `json:"dt"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// errorResponse is returned on failures. cod is a string on some endpoints
// and a number on others, so it is not decoded.
type errorResponse struct {
	Message string `json:"message"`
}

func (e findEntry) toDomain() domain.CityWeather {
	cw := domain.CityWeather{
		ID:          e.ID,
		Name:        e.Name,
		Country:     e.Sys.Country,
		Latitude:    e.Coord.Lat,
		Longitude:   e.Coord.Lon,
		Temperature: e.Main.Temp,
		FeelsLike:   e.Main.FeelsLike,
		TempMin:     e.Main.TempMin,
		TempMax:     e.Main.TempMax,
		Humidity:    e.Main.Humidity,
		Pressure:    e.Main.Pressure,
		WindSpeed:   e.Wind.Speed,
		WindDeg:     e.Wind.Deg,
		Cloudiness:  e.Clouds.All,
	}
	if e.Dt > 0 {
		cw.ObservedAt = time.Unix(e.Dt, 0).UTC()
	}
	if len(e.Weather) > 0 {
		cw.Summary = e.Weather[0].Main
		cw.Description = e.Weather[0].Description
		cw.Icon = e.Weather[0].Icon
	}
	return cw
}
