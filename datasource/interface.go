package datasource

import (
	"context"
	"strings"

	"holicast/models"
)

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchDailyForecasts fetches the 16-day daily forecast horizon starting
	// today for the given coordinates
	FetchDailyForecasts(ctx context.Context, lat, lon float64, unit models.TemperatureUnit) ([]models.DailyForecast, error)

	// FetchHourlyForecasts fetches the hourly forecast for one calendar day
	// (YYYY-MM-DD) at the given coordinates
	FetchHourlyForecasts(ctx context.Context, lat, lon float64, date string, unit models.TemperatureUnit) ([]models.HourlyForecast, error)

	// Name returns the source's name
	Name() string
}

// ViableQuery reports whether a search query is long enough to be worth a
// request. Shorter queries short-circuit to an empty result.
func ViableQuery(query string) bool {
	return len(strings.TrimSpace(query)) >= 2
}

// GeocodingSource is an interface for services that can resolve place names
type GeocodingSource interface {
	// SearchLocations returns candidate locations for a free-text query.
	// Empty or too-short queries return an empty result without a request.
	SearchLocations(ctx context.Context, query string) ([]models.Location, error)

	// Name returns the source's name
	Name() string
}
