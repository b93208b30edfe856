package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holicast/models"
)

func TestTemperature(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(100, Temperature(25, models.Celsius))
	assert.Equal(0, Temperature(0, models.Celsius))
	assert.Equal(0, Temperature(50, models.Celsius))
	assert.Equal(80, Temperature(20, models.Celsius))
	assert.Equal(80, Temperature(30, models.Celsius))

	// 77 F == 25 C
	assert.Equal(100, Temperature(77, models.Fahrenheit))
	// 32 F == 0 C, 25 degrees off the ideal
	assert.Equal(0, Temperature(32, models.Fahrenheit))

	// Extreme inputs stay clamped
	assert.Equal(0, Temperature(-100, models.Celsius))
	assert.Equal(0, Temperature(1000, models.Celsius))
}

func TestSunshine(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{0, 100},
		{1, 100},
		{2, 80},
		{3, 50},
		{45, 35},
		{48, 35},
		{51, 25},
		{57, 25},
		{61, 15},
		{67, 15},
		{71, 10},
		{77, 10},
		{80, 20},
		{82, 20},
		{85, 10},
		{86, 10},
		{87, 5},
		{95, 5},
		{99, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Sunshine(tc.code), "code %d", tc.code)
	}
}

func TestPrecipitation(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(100, Precipitation(0))
	assert.Equal(90, Precipitation(2))
	assert.Equal(0, Precipitation(20))
	assert.Equal(0, Precipitation(50))
}

func TestWind(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(100, Wind(0, models.Celsius))
	assert.Equal(80, Wind(12, models.Celsius))
	assert.Equal(0, Wind(60, models.Celsius))
	assert.Equal(0, Wind(120, models.Celsius))

	// mph inputs are converted to km/h: 37.28 mph ~ 60 km/h
	assert.Equal(0, Wind(37.3, models.Fahrenheit))
	assert.Equal(100, Wind(0, models.Fahrenheit))
}

func TestUV(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(100, UV(3))
	assert.Equal(100, UV(4.5))
	assert.Equal(100, UV(6))
	assert.Equal(50, UV(0))
	assert.Equal(67, UV(1))
	assert.Equal(85, UV(7))
	assert.Equal(10, UV(12))
	assert.Equal(0, UV(13))

	// Impossible inputs stay clamped
	assert.Equal(0, UV(-100))
	assert.Equal(0, UV(1000))
}

func TestForecastComposite(t *testing.T) {
	assert := assert.New(t)

	perfect := models.DailyForecast{
		Date:         "2026-09-01",
		WeatherCode:  1,
		TempMax:      25,
		WindSpeedMax: 0,
		UVIndexMax:   5,
	}
	assert.Equal(100, Forecast(perfect, models.Celsius))

	// temp 20 -> 80, code 2 -> 80, 2mm -> 90, wind 12 -> 80, uv 7 -> 85
	// 0.35*80 + 0.30*80 + 0.15*90 + 0.10*80 + 0.10*85 = 82
	mixed := models.DailyForecast{
		Date:             "2026-09-02",
		WeatherCode:      2,
		TempMax:          20,
		PrecipitationSum: 2,
		WindSpeedMax:     12,
		UVIndexMax:       7,
	}
	assert.Equal(82, Forecast(mixed, models.Celsius))
}

func TestForecastAlwaysInRange(t *testing.T) {
	extremes := []models.DailyForecast{
		{TempMax: -80, WeatherCode: 99, PrecipitationSum: 500, WindSpeedMax: 300, UVIndexMax: 20},
		{TempMax: 60, WeatherCode: 0, PrecipitationSum: 0, WindSpeedMax: 0, UVIndexMax: -5},
		{TempMax: 25, WeatherCode: 1, PrecipitationSum: 0, WindSpeedMax: 0, UVIndexMax: 4},
	}
	for _, f := range extremes {
		for _, unit := range []models.TemperatureUnit{models.Celsius, models.Fahrenheit} {
			got := Forecast(f, unit)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestAverage(t *testing.T) {
	assert := assert.New(t)

	// A location with no matching day contributes neutral-low, not a failure
	assert.Equal(0, Average(nil, models.Celsius))
	assert.Equal(0, Average([]models.DailyForecast{}, models.Celsius))

	a := models.DailyForecast{WeatherCode: 1, TempMax: 25, UVIndexMax: 5}
	b := models.DailyForecast{WeatherCode: 2, TempMax: 20, UVIndexMax: 5, PrecipitationSum: 2, WindSpeedMax: 12}
	assert.Equal(Forecast(a, models.Celsius), Average([]models.DailyForecast{a}, models.Celsius))

	sa, sb := Forecast(a, models.Celsius), Forecast(b, models.Celsius)
	want := (sa + sb + 1) / 2 // rounded mean of two ints
	assert.Equal(want, Average([]models.DailyForecast{a, b}, models.Celsius))
}
