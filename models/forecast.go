package models

// DailyForecast represents one calendar day of forecast at one location
type DailyForecast struct {
	Date                     string  `json:"date"`               // YYYY-MM-DD
	WeatherCode              int     `json:"weatherCode"`        // WMO code for the whole day
	DaytimeWeatherCode       int     `json:"daytimeWeatherCode"` // prominent code between sunrise and sunset
	TempMax                  int     `json:"tempMax"`            // rounded, in the requested unit
	TempMin                  int     `json:"tempMin"`
	PrecipitationSum         float64 `json:"precipitationSum"`         // mm
	PrecipitationProbability int     `json:"precipitationProbability"` // 0-100
	WindSpeedMax             int     `json:"windSpeedMax"`             // km/h or mph depending on unit
	UVIndexMax               int     `json:"uvIndexMax"`
	Sunrise                  string  `json:"sunrise"` // ISO datetime, location-local
	Sunset                   string  `json:"sunset"`
}

// HourlyForecast represents one hour of forecast at one location
type HourlyForecast struct {
	Time                     string  `json:"time"` // ISO datetime, location-local
	Temperature              int     `json:"temperature"`
	WeatherCode              int     `json:"weatherCode"`
	Humidity                 float64 `json:"humidity"` // percentage
	PrecipitationProbability int     `json:"precipitationProbability"`
	Precipitation            float64 `json:"precipitation"` // mm
	WindSpeed                int     `json:"windSpeed"`
	WindDirection            int     `json:"windDirection"` // degrees
	UVIndex                  int     `json:"uvIndex"`
	IsDay                    bool    `json:"isDay"`
	Visibility               float64 `json:"visibility"` // meters
	FeelsLike                int     `json:"feelsLike"`
}

// LocationForecast pairs a saved location with its daily forecast horizon
type LocationForecast struct {
	Location SavedLocation   `json:"location"`
	Daily    []DailyForecast `json:"daily"`
}

// ScoredDay is a single day's forecast at a location together with its
// desirability score. Derived data, recomputed whenever the underlying
// forecasts or the temperature unit change.
type ScoredDay struct {
	Location SavedLocation `json:"location"`
	Forecast DailyForecast `json:"forecast"`
	Score    int           `json:"score"` // 0-100
}

// BreakWindow is a run of consecutive calendar dates at one location,
// evaluated as a single multi-day trip candidate
type BreakWindow struct {
	Location     SavedLocation `json:"location"`
	Dates        []string      `json:"dates"` // consecutive, ascending
	AverageScore int           `json:"averageScore"`
}
