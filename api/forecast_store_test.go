package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holicast/models"
)

func horizonFor(id int64, name string, dates ...string) models.LocationForecast {
	daily := make([]models.DailyForecast, 0, len(dates))
	for _, d := range dates {
		daily = append(daily, models.DailyForecast{Date: d, TempMax: 24})
	}
	return models.LocationForecast{
		Location: models.SavedLocation{
			Location: models.Location{ID: id, Name: name},
			AddedAt:  time.Now(),
		},
		Daily: daily,
	}
}

func TestUpdateAndGetForecast(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01", "2026-09-02"))

	fc, ok := store.Forecast(1)
	assert.True(ok)
	assert.Equal("Faro", fc.Location.Name)
	assert.Len(fc.Daily, 2)

	_, ok = store.Forecast(2)
	assert.False(ok)

	_, ok = store.UpdatedAt(1)
	assert.True(ok)
}

func TestUpdateClearsFetchError(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.SetFetchError(1, errors.New("timeout"))

	msg, ok := store.FetchError(1)
	assert.True(ok)
	assert.Equal("timeout", msg)

	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01"))
	_, ok = store.FetchError(1)
	assert.False(ok)
}

func TestFetchErrorKeepsExistingData(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01"))
	store.SetFetchError(1, errors.New("timeout"))

	_, ok := store.Forecast(1)
	assert.True(ok)
	_, ok = store.FetchError(1)
	assert.True(ok)
}

func TestDailyByLocation(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01"))
	store.UpdateForecast(horizonFor(2, "Porto", "2026-09-01", "2026-09-02"))

	daily := store.DailyByLocation()
	assert.Len(daily, 2)
	assert.Len(daily[1], 1)
	assert.Len(daily[2], 2)
}

func TestRemove(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01"))
	store.SetFetchError(1, errors.New("timeout"))

	store.Remove(1)

	_, ok := store.Forecast(1)
	assert.False(ok)
	_, ok = store.FetchError(1)
	assert.False(ok)
	_, ok = store.UpdatedAt(1)
	assert.False(ok)
}

func TestPruneOld(t *testing.T) {
	assert := assert.New(t)

	store := NewForecastStore()
	store.UpdateForecast(horizonFor(1, "Faro", "2026-09-01"))
	store.UpdateForecast(horizonFor(2, "Porto", "2026-09-01"))

	// Backdate one entry past the cutoff
	store.mutex.Lock()
	store.updated[1] = time.Now().Add(-2 * time.Hour)
	store.mutex.Unlock()

	pruned := store.PruneOld(time.Hour)
	assert.Equal(1, pruned)

	_, ok := store.Forecast(1)
	assert.False(ok)
	_, ok = store.Forecast(2)
	assert.True(ok)
}
