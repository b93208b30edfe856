package collector

import (
	"context"
	"sync"
	"time"

	"holicast/datasource"
	"holicast/models"
)

// Sink receives the results of forecast fetches. Errors are reported per
// location so one failing destination never blocks the others.
type Sink interface {
	UpdateForecast(fc models.LocationForecast)
	SetFetchError(locationID int64, err error)
}

// Collector manages the concurrent collection of forecast data for the
// saved locations. Each location is an independent fetch; no ordering is
// guaranteed between completions.
type Collector struct {
	source       datasource.ForecastSource
	sink         Sink
	fetchTimeout time.Duration

	mu  sync.Mutex
	gen uint64 // bumped on invalidation; in-flight results from older generations are dropped
}

// New creates a new collector publishing into the given sink
func New(source datasource.ForecastSource, sink Sink) *Collector {
	return &Collector{
		source:       source,
		sink:         sink,
		fetchTimeout: 30 * time.Second, // Default timeout
	}
}

// SetFetchTimeout changes the timeout for API requests
func (c *Collector) SetFetchTimeout(timeout time.Duration) {
	c.fetchTimeout = timeout
}

// Invalidate marks all in-flight fetches as stale. Their results will be
// discarded when they complete, so a slow fetch can never overwrite state
// derived from a newer location set or unit.
func (c *Collector) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

func (c *Collector) currentGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Refresh fetches the forecast horizon for every location concurrently and
// waits for all fetches to finish. Results belonging to a generation that
// was invalidated mid-flight are discarded instead of published.
func (c *Collector) Refresh(ctx context.Context, locations []models.SavedLocation, unit models.TemperatureUnit) {
	gen := c.currentGen()

	var wg sync.WaitGroup
	for _, loc := range locations {
		wg.Add(1)
		go func(loc models.SavedLocation) {
			defer wg.Done()
			c.fetchOnce(ctx, gen, loc, unit)
		}(loc)
	}
	wg.Wait()
}

// fetchOnce performs a single fetch for one location
func (c *Collector) fetchOnce(ctx context.Context, gen uint64, loc models.SavedLocation, unit models.TemperatureUnit) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	daily, err := c.source.FetchDailyForecasts(fetchCtx, loc.Latitude, loc.Longitude, unit)

	// The consuming view may have moved on while this fetch was in flight
	if c.currentGen() != gen {
		return
	}

	if err != nil {
		c.sink.SetFetchError(loc.ID, err)
		return
	}
	c.sink.UpdateForecast(models.LocationForecast{Location: loc, Daily: daily})
}

// Start begins periodic collection. snapshot supplies the current location
// set and unit before every cycle, so changes made between ticks are picked
// up. The returned function stops collection.
func (c *Collector) Start(ctx context.Context, interval time.Duration, snapshot func() ([]models.SavedLocation, models.TemperatureUnit)) func() {
	collectionCtx, cancelCollection := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Do an initial refresh immediately
		locations, unit := snapshot()
		c.Refresh(collectionCtx, locations, unit)

		for {
			select {
			case <-ticker.C:
				locations, unit := snapshot()
				c.Refresh(collectionCtx, locations, unit)
			case <-collectionCtx.Done():
				return
			}
		}
	}()

	return func() {
		cancelCollection()
		wg.Wait()
	}
}
