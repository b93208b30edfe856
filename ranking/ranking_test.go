package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holicast/models"
	"holicast/score"
)

// day builds a forecast whose score is controlled entirely by tempMax:
// every other sub-score is pinned at 100, so the composite is
// round(100 - 1.4*|tempMax-25|).
func day(date string, tempMax int) models.DailyForecast {
	return models.DailyForecast{
		Date:        date,
		WeatherCode: 0,
		TempMax:     tempMax,
		UVIndexMax:  5,
	}
}

func loc(id int64, name string) models.SavedLocation {
	return models.SavedLocation{
		Location: models.Location{ID: id, Name: name, Country: "Portugal", CountryCode: "PT"},
	}
}

func TestHorizonDates(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	dates := HorizonDates(now)

	require.Len(t, dates, HorizonDays)
	assert.Equal("2026-09-01", dates[0])
	assert.Equal("2026-09-02", dates[1])
	assert.Equal("2026-09-16", dates[15])
}

func TestDatesInRange(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"2026-09-01", "2026-09-02", "2026-09-03"}, DatesInRange("2026-09-01", "2026-09-03"))
	assert.Equal([]string{"2026-09-01"}, DatesInRange("2026-09-01", "2026-09-01"))

	// Month boundary
	assert.Equal([]string{"2026-08-31", "2026-09-01"}, DatesInRange("2026-08-31", "2026-09-01"))

	// Inverted or malformed ranges enumerate nothing
	assert.Empty(DatesInRange("2026-09-03", "2026-09-01"))
	assert.Empty(DatesInRange("not-a-date", "2026-09-01"))
	assert.Empty(DatesInRange("2026-09-01", ""))
}

func TestBestPerDay(t *testing.T) {
	assert := assert.New(t)

	locA, locB := loc(1, "Faro"), loc(2, "Porto")
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}

	forecasts := map[int64][]models.DailyForecast{
		1: {day("2026-09-01", 25)}, // 100, no data for later days
		2: {day("2026-09-01", 20), day("2026-09-02", 20)}, // 93 both days
	}

	winners := BestPerDay(dates, []models.SavedLocation{locA, locB}, forecasts, models.Celsius)

	// Day 3 has no data anywhere and produces no entry
	require.Len(t, winners, 2)

	assert.Equal(int64(1), winners[0].Location.ID)
	assert.Equal(100, winners[0].Score)
	assert.Equal("2026-09-01", winners[0].Forecast.Date)

	// A location without a forecast for a day cannot win or appear
	assert.Equal(int64(2), winners[1].Location.ID)
	assert.Equal("2026-09-02", winners[1].Forecast.Date)
}

func TestBestPerDayTieKeepsFirstLocation(t *testing.T) {
	locA, locB := loc(1, "Faro"), loc(2, "Porto")
	dates := []string{"2026-09-01"}

	forecasts := map[int64][]models.DailyForecast{
		1: {day("2026-09-01", 22)},
		2: {day("2026-09-01", 22)},
	}

	winners := BestPerDay(dates, []models.SavedLocation{locA, locB}, forecasts, models.Celsius)
	require.Len(t, winners, 1)
	assert.Equal(t, int64(1), winners[0].Location.ID)

	// Reversing the scan order flips the winner: the tie-break is positional
	winners = BestPerDay(dates, []models.SavedLocation{locB, locA}, forecasts, models.Celsius)
	require.Len(t, winners, 1)
	assert.Equal(t, int64(2), winners[0].Location.ID)
}

func TestBestPerDayNoLocations(t *testing.T) {
	winners := BestPerDay([]string{"2026-09-01"}, nil, nil, models.Celsius)
	assert.Empty(t, winners)
}

func TestTopDates(t *testing.T) {
	assert := assert.New(t)

	locA := loc(1, "Faro")
	temps := []int{10, 20, 25, 15, 24, 23, 5} // scores 79 93 100 86 99 97 72
	var winners []models.ScoredDay
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04", "2026-09-05", "2026-09-06", "2026-09-07"}
	for i, temp := range temps {
		f := day(dates[i], temp)
		winners = append(winners, models.ScoredDay{Location: locA, Forecast: f, Score: score.Forecast(f, models.Celsius)})
	}

	top := TopDates(winners, 5)
	assert.Equal([]string{"2026-09-03", "2026-09-05", "2026-09-06", "2026-09-02", "2026-09-04"}, top)

	// Fewer winners than requested returns them all
	assert.Len(TopDates(winners[:2], 5), 2)
	assert.Empty(TopDates(nil, 5))
}

func TestBestDaysForDestination(t *testing.T) {
	assert := assert.New(t)

	locA := loc(1, "Faro")
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04"}
	daily := []models.DailyForecast{
		day("2026-09-01", 15), // 86
		day("2026-09-02", 25), // 100
		day("2026-09-04", 20), // 93
	}

	days := BestDaysForDestination(dates, locA, daily, models.Celsius)

	// Full ranked list of every day with data, best first; the gap day is absent
	require.Len(t, days, 3)
	assert.Equal("2026-09-02", days[0].Forecast.Date)
	assert.Equal(100, days[0].Score)
	assert.Equal("2026-09-04", days[1].Forecast.Date)
	assert.Equal("2026-09-01", days[2].Forecast.Date)
}

func TestBestDaysForDestinationStableOnTies(t *testing.T) {
	locA := loc(1, "Faro")
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	daily := []models.DailyForecast{
		day("2026-09-01", 20),
		day("2026-09-02", 25),
		day("2026-09-03", 20),
	}

	days := BestDaysForDestination(dates, locA, daily, models.Celsius)
	require.Len(t, days, 3)
	// Equal scores keep chronological order
	assert.Equal(t, "2026-09-01", days[1].Forecast.Date)
	assert.Equal(t, "2026-09-03", days[2].Forecast.Date)
}

func TestBestBreaks(t *testing.T) {
	assert := assert.New(t)

	locX, locY := loc(1, "Faro"), loc(2, "Porto")

	// X scores 79 93 100 93 79 across the range; the middle window is best
	forecasts := map[int64][]models.DailyForecast{
		1: {
			day("2026-09-01", 10),
			day("2026-09-02", 20),
			day("2026-09-03", 25),
			day("2026-09-04", 20),
			day("2026-09-05", 10),
		},
		// Y is missing 2026-09-03, which sits inside every 3-day window
		2: {
			day("2026-09-01", 25),
			day("2026-09-02", 25),
			day("2026-09-04", 25),
			day("2026-09-05", 25),
		},
	}

	breaks := BestBreaks("2026-09-01", "2026-09-05", 3, []models.SavedLocation{locX, locY}, forecasts, models.Celsius)

	require.Len(t, breaks, 1)
	assert.Equal(int64(1), breaks[0].Location.ID)
	assert.Equal([]string{"2026-09-02", "2026-09-03", "2026-09-04"}, breaks[0].Dates)
	// (93 + 100 + 93) / 3 rounded
	assert.Equal(95, breaks[0].AverageScore)
}

func TestBestBreaksTieKeepsEarliestWindow(t *testing.T) {
	locZ := loc(3, "Madeira")
	forecasts := map[int64][]models.DailyForecast{
		3: {
			day("2026-09-01", 25),
			day("2026-09-02", 25),
			day("2026-09-03", 25),
			day("2026-09-04", 25),
		},
	}

	breaks := BestBreaks("2026-09-01", "2026-09-04", 2, []models.SavedLocation{locZ}, forecasts, models.Celsius)
	require.Len(t, breaks, 1)
	// All windows average 100; the first-scanned window stays on top
	assert.Equal(t, []string{"2026-09-01", "2026-09-02"}, breaks[0].Dates)
}

func TestBestBreaksSortedAcrossLocations(t *testing.T) {
	locA, locB := loc(1, "Faro"), loc(2, "Porto")
	forecasts := map[int64][]models.DailyForecast{
		1: {day("2026-09-01", 15), day("2026-09-02", 15)}, // avg 86
		2: {day("2026-09-01", 25), day("2026-09-02", 25)}, // avg 100
	}

	breaks := BestBreaks("2026-09-01", "2026-09-02", 2, []models.SavedLocation{locA, locB}, forecasts, models.Celsius)
	require.Len(t, breaks, 2)
	assert.Equal(t, int64(2), breaks[0].Location.ID)
	assert.Equal(t, int64(1), breaks[1].Location.ID)
}

func TestBestBreaksDegenerateParameters(t *testing.T) {
	assert := assert.New(t)

	locA := loc(1, "Faro")
	forecasts := map[int64][]models.DailyForecast{
		1: {day("2026-09-01", 25), day("2026-09-02", 25), day("2026-09-03", 25)},
	}
	locations := []models.SavedLocation{locA}

	// Break length below 2 produces nothing
	assert.Empty(BestBreaks("2026-09-01", "2026-09-03", 1, locations, forecasts, models.Celsius))
	assert.Empty(BestBreaks("2026-09-01", "2026-09-03", 0, locations, forecasts, models.Celsius))

	// Range shorter than the window produces nothing
	assert.Empty(BestBreaks("2026-09-01", "2026-09-02", 3, locations, forecasts, models.Celsius))

	// Location with no forecasts at all is omitted
	assert.Empty(BestBreaks("2026-09-01", "2026-09-03", 2, locations, map[int64][]models.DailyForecast{}, models.Celsius))
}
