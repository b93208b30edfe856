package openmeteo

import (
	"net/http"
	"time"

	"holicast/datasource"
)

const (
	defaultWeatherBaseURL   = "https://api.open-meteo.com/v1"
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
)

// Provider fetches forecasts and geocoding results from Open-Meteo.
// The API is keyless for non-commercial use.
type Provider struct {
	weatherBaseURL   string
	geocodingBaseURL string
	client           *http.Client
}

// Ensure Provider implements both source interfaces
var (
	_ datasource.ForecastSource  = (*Provider)(nil)
	_ datasource.GeocodingSource = (*Provider)(nil)
)

// New creates a new Open-Meteo provider
func New() *Provider {
	return &Provider{
		weatherBaseURL:   defaultWeatherBaseURL,
		geocodingBaseURL: defaultGeocodingBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "Open-Meteo"
}

// temperatureUnitParam maps the unit to Open-Meteo's temperature_unit value
func temperatureUnitParam(unit string) string {
	if unit == "fahrenheit" {
		return "fahrenheit"
	}
	return "celsius"
}

// windUnitParam maps the unit to Open-Meteo's wind_speed_unit value.
// Imperial users get mph, everyone else km/h.
func windUnitParam(unit string) string {
	if unit == "fahrenheit" {
		return "mph"
	}
	return "kmh"
}
