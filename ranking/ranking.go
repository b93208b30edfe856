// Package ranking reduces scored multi-location forecast data to the three
// recommendation views: best destination per day, best days for one
// destination, and best contiguous multi-day break per destination.
//
// All functions are pure over snapshots of (locations, forecasts-by-location,
// unit, parameters); the caller re-invokes them whenever any input changes.
// Missing data is never an error here: a location without a forecast for a
// date simply produces no entry.
package ranking

import (
	"sort"
	"time"

	"holicast/models"
	"holicast/score"
)

// HorizonDays is the fixed rolling horizon over which forecasts are fetched
// and ranked, starting at the current calendar date.
const HorizonDays = 16

// dateLayout is the calendar-date wire format
const dateLayout = "2006-01-02"

// HorizonDates returns the horizon's calendar dates starting at now (UTC)
func HorizonDates(now time.Time) []string {
	day := now.UTC()
	dates := make([]string, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		dates = append(dates, day.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// DatesInRange enumerates every calendar date from start to end inclusive.
// An unparseable or inverted range yields an empty slice.
func DatesInRange(start, end string) []string {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// forecastByDate indexes a location's daily horizon by calendar date
func forecastByDate(daily []models.DailyForecast) map[string]models.DailyForecast {
	byDate := make(map[string]models.DailyForecast, len(daily))
	for _, f := range daily {
		byDate[f.Date] = f
	}
	return byDate
}

// BestPerDay selects, for each date, the location with the highest-scoring
// forecast. Locations are scanned in saved order and only a strictly greater
// score displaces the current winner, so on ties the first-encountered
// location stays on top. Dates where no location has data produce no entry.
func BestPerDay(dates []string, locations []models.SavedLocation, forecasts map[int64][]models.DailyForecast, unit models.TemperatureUnit) []models.ScoredDay {
	indexed := make(map[int64]map[string]models.DailyForecast, len(locations))
	for _, loc := range locations {
		if daily, ok := forecasts[loc.ID]; ok {
			indexed[loc.ID] = forecastByDate(daily)
		}
	}

	winners := make([]models.ScoredDay, 0, len(dates))
	for _, date := range dates {
		var best *models.ScoredDay
		for _, loc := range locations {
			byDate, ok := indexed[loc.ID]
			if !ok {
				continue
			}
			forecast, ok := byDate[date]
			if !ok {
				continue
			}
			s := score.Forecast(forecast, unit)
			if best == nil || s > best.Score {
				best = &models.ScoredDay{Location: loc, Forecast: forecast, Score: s}
			}
		}
		if best != nil {
			winners = append(winners, *best)
		}
	}
	return winners
}

// TopDates returns the dates of the n best-scoring winners, used as a
// highlight set rather than a filter. The sort is stable so equal scores
// keep their chronological order.
func TopDates(winners []models.ScoredDay, n int) []string {
	sorted := make([]models.ScoredDay, len(winners))
	copy(sorted, winners)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	dates := make([]string, 0, n)
	for _, w := range sorted[:n] {
		dates = append(dates, w.Forecast.Date)
	}
	return dates
}

// BestDaysForDestination scores every horizon day that has data for one
// location and returns the full list sorted by score, best first.
func BestDaysForDestination(dates []string, location models.SavedLocation, daily []models.DailyForecast, unit models.TemperatureUnit) []models.ScoredDay {
	byDate := forecastByDate(daily)

	days := make([]models.ScoredDay, 0, len(dates))
	for _, date := range dates {
		forecast, ok := byDate[date]
		if !ok {
			continue
		}
		days = append(days, models.ScoredDay{
			Location: location,
			Forecast: forecast,
			Score:    score.Forecast(forecast, unit),
		})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Score > days[j].Score
	})
	return days
}

// BestBreaks finds, for each location, the best window of exactly length
// consecutive dates inside the inclusive [start, end] range, then returns
// all found windows sorted by average score descending.
//
// A window is valid only if every date in it has a forecast; a gap skips
// that window position rather than penalising it. Per location the windows
// are scanned left to right and only a strictly greater average displaces
// the current best, so ties keep the earliest window. Locations with no
// valid window are omitted. A length below 2, or a range shorter than the
// length, produces no windows at all.
func BestBreaks(start, end string, length int, locations []models.SavedLocation, forecasts map[int64][]models.DailyForecast, unit models.TemperatureUnit) []models.BreakWindow {
	if length < 2 {
		return []models.BreakWindow{}
	}
	days := DatesInRange(start, end)
	if len(days) < length {
		return []models.BreakWindow{}
	}

	windows := make([]models.BreakWindow, 0, len(locations))
	for _, loc := range locations {
		daily, ok := forecasts[loc.ID]
		if !ok {
			continue
		}
		byDate := forecastByDate(daily)

		var best *models.BreakWindow
		for j := 0; j+length <= len(days); j++ {
			window := days[j : j+length]
			selected := make([]models.DailyForecast, 0, length)
			for _, date := range window {
				f, ok := byDate[date]
				if !ok {
					break
				}
				selected = append(selected, f)
			}
			if len(selected) != length {
				continue
			}

			avg := score.Average(selected, unit)
			if best == nil || avg > best.AverageScore {
				dates := make([]string, length)
				copy(dates, window)
				best = &models.BreakWindow{Location: loc, Dates: dates, AverageScore: avg}
			}
		}
		if best != nil {
			windows = append(windows, *best)
		}
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].AverageScore > windows[j].AverageScore
	})
	return windows
}
