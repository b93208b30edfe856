package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"holicast/datasource"
	"holicast/models"
)

// CachedForecastSource wraps a ForecastSource and adds caching functionality.
// Daily entries are keyed by coordinates and unit, hourly entries also by
// date, so a unit toggle naturally misses and refetches.
type CachedForecastSource struct {
	source         datasource.ForecastSource
	daily          map[string]dailyCacheEntry
	hourly         map[string]hourlyCacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// dailyCacheEntry represents a cached daily horizon with its timestamp
type dailyCacheEntry struct {
	Data      []models.DailyForecast
	Timestamp time.Time
}

// hourlyCacheEntry represents a cached hourly day with its timestamp
type hourlyCacheEntry struct {
	Data      []models.HourlyForecast
	Timestamp time.Time
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, cacheDuration time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		daily:         make(map[string]dailyCacheEntry),
		hourly:        make(map[string]hourlyCacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying forecast source with [Cached] prefix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchDailyForecasts fetches the daily horizon, using cache when available
func (c *CachedForecastSource) FetchDailyForecasts(ctx context.Context, lat, lon float64, unit models.TemperatureUnit) ([]models.DailyForecast, error) {
	cacheKey := fmt.Sprintf("%.4f:%.4f:%s", lat, lon, unit)

	c.mutex.RLock()
	entry, found := c.daily[cacheKey]
	c.mutex.RUnlock()

	// If found and not expired, return the cached horizon
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh data
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	forecasts, err := c.source.FetchDailyForecasts(ctx, lat, lon, unit)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.daily[cacheKey] = dailyCacheEntry{
		Data:      forecasts,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return forecasts, nil
}

// FetchHourlyForecasts fetches one day's hourly series, using cache when available
func (c *CachedForecastSource) FetchHourlyForecasts(ctx context.Context, lat, lon float64, date string, unit models.TemperatureUnit) ([]models.HourlyForecast, error) {
	cacheKey := fmt.Sprintf("%.4f:%.4f:%s:%s", lat, lon, date, unit)

	c.mutex.RLock()
	entry, found := c.hourly[cacheKey]
	c.mutex.RUnlock()

	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		return entry.Data, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	hourly, err := c.source.FetchHourlyForecasts(ctx, lat, lon, date, unit)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.hourly[cacheKey] = hourlyCacheEntry{
		Data:      hourly,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return hourly, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
