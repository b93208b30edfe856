package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holicast/models"
)

// stubSource counts upstream calls and returns canned data
type stubSource struct {
	mu          sync.Mutex
	dailyCalls  int
	hourlyCalls int
}

func (s *stubSource) Name() string { return "Stub" }

func (s *stubSource) FetchDailyForecasts(ctx context.Context, lat, lon float64, unit models.TemperatureUnit) ([]models.DailyForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyCalls++
	return []models.DailyForecast{{Date: "2026-09-01", TempMax: 25}}, nil
}

func (s *stubSource) FetchHourlyForecasts(ctx context.Context, lat, lon float64, date string, unit models.TemperatureUnit) ([]models.HourlyForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hourlyCalls++
	return []models.HourlyForecast{{Time: date + "T12:00", Temperature: 25}}, nil
}

func TestDailyCacheHit(t *testing.T) {
	assert := assert.New(t)

	source := &stubSource{}
	cached := NewCachedForecastSource(source, time.Minute)
	ctx := context.Background()

	first, err := cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Celsius)
	require.NoError(t, err)
	second, err := cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Celsius)
	require.NoError(t, err)

	assert.Equal(first, second)
	assert.Equal(1, source.dailyCalls)

	hits, misses := cached.CacheStats()
	assert.Equal(1, hits)
	assert.Equal(1, misses)
}

func TestDailyCacheKeyIncludesUnit(t *testing.T) {
	source := &stubSource{}
	cached := NewCachedForecastSource(source, time.Minute)
	ctx := context.Background()

	_, err := cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Celsius)
	require.NoError(t, err)
	_, err = cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Fahrenheit)
	require.NoError(t, err)

	// A unit toggle must refetch, not reuse
	assert.Equal(t, 2, source.dailyCalls)
}

func TestDailyCacheExpiry(t *testing.T) {
	source := &stubSource{}
	cached := NewCachedForecastSource(source, time.Millisecond)
	ctx := context.Background()

	_, err := cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Celsius)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = cached.FetchDailyForecasts(ctx, 37.0187, -7.9272, models.Celsius)
	require.NoError(t, err)
	assert.Equal(t, 2, source.dailyCalls)
}

func TestHourlyCacheKeyedByDate(t *testing.T) {
	source := &stubSource{}
	cached := NewCachedForecastSource(source, time.Minute)
	ctx := context.Background()

	_, err := cached.FetchHourlyForecasts(ctx, 37.0187, -7.9272, "2026-09-01", models.Celsius)
	require.NoError(t, err)
	_, err = cached.FetchHourlyForecasts(ctx, 37.0187, -7.9272, "2026-09-01", models.Celsius)
	require.NoError(t, err)
	_, err = cached.FetchHourlyForecasts(ctx, 37.0187, -7.9272, "2026-09-02", models.Celsius)
	require.NoError(t, err)

	assert.Equal(t, 2, source.hourlyCalls)
}

func TestName(t *testing.T) {
	cached := NewCachedForecastSource(&stubSource{}, time.Minute)
	assert.Equal(t, "Stub [Cached]", cached.Name())
}
