package domain

import (
	"fmt"
	"time"
)

// Units selects the measurement system the weather service reports in
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsStandard Units = "standard" // Kelvin, m/s
)

// Valid reports whether u is one of the supported unit systems
func (u Units) Valid() bool {
	switch u {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return true
	}
	return false
}

// TemperatureSymbol returns the suffix used when printing temperatures
func (u Units) TemperatureSymbol() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

// SpeedSymbol returns the suffix used when printing wind speed
func (u Units) SpeedSymbol() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// CityWeather is one match returned by a city lookup
type CityWeather struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
	Summary     string    `json:"summary"`     // short condition group, e.g. "Clouds"
	Description string    `json:"description"` // e.g. "broken clouds"
	Icon        string    `json:"icon"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	TempMin     float64   `json:"temp_min"`
	TempMax     float64   `json:"temp_max"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	WindDeg     int       `json:"wind_deg"`
	Cloudiness  int       `json:"cloudiness"`
	ObservedAt  time.Time `json:"observed_at"`
}

// DisplayName returns the city name with its country code when known
func (c CityWeather) DisplayName() string {
	if c.Country == "" {
		return c.Name
	}
	return fmt.Sprintf("%s, %s", c.Name, c.Country)
}

// IsDaytime reports whether the icon code marks a daytime observation
func (c CityWeather) IsDaytime() bool {
	return len(c.Icon) == 0 || c.Icon[len(c.Icon)-1] != 'n'
}
