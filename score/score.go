// Package score rates daily forecasts for "good holiday weather" on a 0-100
// scale. The composite weighs five independent sub-scores:
//
//	Temperature   35%  — ideal ~25 °C, penalised as it deviates
//	Sunshine      30%  — derived from the WMO weather code
//	Precipitation 15%  — lower is better
//	Wind          10%  — lower is better
//	UV safety     10%  — moderate UV best (3-6), extremes penalised
package score

import (
	"math"

	"holicast/models"
)

const (
	weightTemperature   = 0.35
	weightSunshine      = 0.30
	weightPrecipitation = 0.15
	weightWind          = 0.10
	weightUV            = 0.10
)

// clamp keeps a sub-score inside [0, 100]
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Temperature scores the daily maximum temperature. Inputs in Fahrenheit are
// converted so 25 °C is always the ideal; the score falls off linearly and
// reaches 0 at a 25-degree deviation.
func Temperature(tempMax float64, unit models.TemperatureUnit) int {
	c := tempMax
	if unit == models.Fahrenheit {
		c = (tempMax - 32) * 5 / 9
	}
	diff := math.Abs(c - 25)
	return clamp(int(math.Round(100 - diff*4)))
}

// Sunshine maps a WMO weather code to a sunshine factor. The chained
// upper-bound checks reproduce the code-range boundaries exactly.
func Sunshine(weatherCode int) int {
	switch {
	case weatherCode <= 1:
		return 100 // clear / mainly clear
	case weatherCode == 2:
		return 80 // partly cloudy
	case weatherCode == 3:
		return 50 // overcast
	case weatherCode <= 48:
		return 35 // fog
	case weatherCode <= 57:
		return 25 // drizzle / freezing drizzle
	case weatherCode <= 67:
		return 15 // rain / freezing rain
	case weatherCode <= 77:
		return 10 // snow / snow grains
	case weatherCode <= 82:
		return 20 // rain showers
	case weatherCode <= 86:
		return 10 // snow showers
	default:
		return 5 // thunderstorm
	}
}

// Precipitation scores the daily precipitation sum in millimetres.
// 0 mm scores 100, 20+ mm scores 0.
func Precipitation(precipMm float64) int {
	return clamp(int(math.Round(100 - precipMm*5)))
}

// Wind scores the daily maximum wind speed. Imperial inputs (mph) are
// converted to km/h first. 0 km/h scores 100, 60+ km/h scores 0.
func Wind(windSpeed float64, unit models.TemperatureUnit) int {
	kmh := windSpeed
	if unit == models.Fahrenheit {
		kmh = windSpeed * 1.60934
	}
	return clamp(int(math.Round(100 - (kmh/60)*100)))
}

// UV scores the UV index. The sweet spot 3-6 scores 100; too low (winter) or
// too high (dangerous) is penalised.
func UV(uv float64) int {
	if uv >= 3 && uv <= 6 {
		return 100
	}
	if uv < 3 {
		return clamp(int(math.Round(50 + uv*(50.0/3)))) // 0→50, 3→100
	}
	// uv > 6
	return clamp(int(math.Round(100 - (uv-6)*15))) // 6→100, ~12→10
}

// Forecast returns the weighted composite desirability score for one day,
// always an integer in [0, 100].
func Forecast(f models.DailyForecast, unit models.TemperatureUnit) int {
	t := Temperature(float64(f.TempMax), unit)
	s := Sunshine(f.WeatherCode)
	p := Precipitation(f.PrecipitationSum)
	w := Wind(float64(f.WindSpeedMax), unit)
	u := UV(float64(f.UVIndexMax))
	return int(math.Round(
		float64(t)*weightTemperature +
			float64(s)*weightSunshine +
			float64(p)*weightPrecipitation +
			float64(w)*weightWind +
			float64(u)*weightUV))
}

// Average returns the rounded mean score across forecasts. An empty set
// scores 0 rather than being an error, so a location with no matching day
// contributes neutral-low instead of failing.
func Average(forecasts []models.DailyForecast, unit models.TemperatureUnit) int {
	if len(forecasts) == 0 {
		return 0
	}
	total := 0
	for _, f := range forecasts {
		total += Forecast(f, unit)
	}
	return int(math.Round(float64(total) / float64(len(forecasts))))
}
