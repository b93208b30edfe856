package datasource

import (
	"context"
	"fmt"

	"holicast/models"

	"golang.org/x/time/rate"
)

// RateLimitedForecastSource wraps a ForecastSource with rate limiting
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource creates a new rate limited forecast source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchDailyForecasts fetches daily forecast data, respecting rate limits
func (r *RateLimitedForecastSource) FetchDailyForecasts(ctx context.Context, lat, lon float64, unit models.TemperatureUnit) ([]models.DailyForecast, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying source
	return r.source.FetchDailyForecasts(ctx, lat, lon, unit)
}

// FetchHourlyForecasts fetches hourly forecast data, respecting rate limits
func (r *RateLimitedForecastSource) FetchHourlyForecasts(ctx context.Context, lat, lon float64, date string, unit models.TemperatureUnit) ([]models.HourlyForecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchHourlyForecasts(ctx, lat, lon, date, unit)
}

// Name returns the source name
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

// RateLimitedGeocodingSource wraps a GeocodingSource with rate limiting
type RateLimitedGeocodingSource struct {
	source  GeocodingSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedGeocodingSource creates a new rate limited geocoding source
func NewRateLimitedGeocodingSource(source GeocodingSource, rps float64, burst int) *RateLimitedGeocodingSource {
	return &RateLimitedGeocodingSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// SearchLocations resolves a query, respecting rate limits. Queries short
// enough to short-circuit in the underlying source never consume a token.
func (r *RateLimitedGeocodingSource) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	if !ViableQuery(query) {
		return []models.Location{}, nil
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.SearchLocations(ctx, query)
}

// Name returns the source name
func (r *RateLimitedGeocodingSource) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ ForecastSource  = (*RateLimitedForecastSource)(nil)
	_ GeocodingSource = (*RateLimitedGeocodingSource)(nil)
)
