package api

import (
	"sync"
	"time"

	"holicast/models"
)

// ForecastStore holds the latest daily forecast horizon per saved location,
// plus a per-location error state for fetches that failed. A location with
// neither data nor an error is simply still loading; ranking treats it as
// "no entry", never as a failure.
type ForecastStore struct {
	data    map[int64]models.LocationForecast
	errs    map[int64]string
	updated map[int64]time.Time
	mutex   sync.RWMutex
}

// NewForecastStore creates a new in-memory forecast snapshot store
func NewForecastStore() *ForecastStore {
	return &ForecastStore{
		data:    make(map[int64]models.LocationForecast),
		errs:    make(map[int64]string),
		updated: make(map[int64]time.Time),
	}
}

// UpdateForecast stores a freshly fetched horizon for a location and clears
// any previous error state
func (s *ForecastStore) UpdateForecast(fc models.LocationForecast) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := fc.Location.ID
	s.data[id] = fc
	s.updated[id] = time.Now()
	delete(s.errs, id)
}

// SetFetchError records a failed fetch for a location. Existing forecast
// data is kept; the error only marks the refresh as failed.
func (s *ForecastStore) SetFetchError(locationID int64, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errs[locationID] = err.Error()
}

// Forecast retrieves the stored horizon for one location
func (s *ForecastStore) Forecast(locationID int64) (models.LocationForecast, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	fc, exists := s.data[locationID]
	return fc, exists
}

// FetchError returns the recorded error for a location, if any
func (s *ForecastStore) FetchError(locationID int64) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	msg, exists := s.errs[locationID]
	return msg, exists
}

// DailyByLocation returns a snapshot of every stored horizon keyed by
// location id, the shape the ranking engine consumes
func (s *ForecastStore) DailyByLocation() map[int64][]models.DailyForecast {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make(map[int64][]models.DailyForecast, len(s.data))
	for id, fc := range s.data {
		out[id] = fc.Daily
	}
	return out
}

// Remove drops all state for a location, used when it is unsaved
func (s *ForecastStore) Remove(locationID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, locationID)
	delete(s.errs, locationID)
	delete(s.updated, locationID)
}

// UpdatedAt returns when a location's horizon was last stored
func (s *ForecastStore) UpdatedAt(locationID int64) (time.Time, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	t, exists := s.updated[locationID]
	return t, exists
}

// PruneOld removes horizons older than the specified duration, so a
// location whose refreshes keep failing eventually stops showing stale data
func (s *ForecastStore) PruneOld(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	prunedCount := 0

	for id, t := range s.updated {
		if t.Before(cutoff) {
			delete(s.data, id)
			delete(s.updated, id)
			prunedCount++
		}
	}

	return prunedCount
}
