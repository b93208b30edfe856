package models

import (
	"time"
)

// Location represents a geocoded place returned by the location search
type Location struct {
	ID          int64   `json:"id"`          // provider-assigned, stable across searches
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"` // ISO 3166-1 alpha-2
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Region      string  `json:"region,omitempty"`   // state / first-level admin area
	Timezone    string  `json:"timezone,omitempty"` // IANA name
}

// SavedLocation is a Location the user has chosen to track
type SavedLocation struct {
	Location
	AddedAt time.Time `json:"addedAt"`
}

// TemperatureUnit selects the measurement system for forecasts.
// Celsius implies km/h wind speeds, Fahrenheit implies mph.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Preferences holds the user-tunable settings
type Preferences struct {
	TemperatureUnit  TemperatureUnit `json:"temperatureUnit"`
	SelectedDates    []string        `json:"selectedDates"`    // YYYY-MM-DD
	PreferredAirport string          `json:"preferredAirport"` // IATA code, e.g. "LHR"
}

// DefaultPreferences returns the settings used before the user changes anything
func DefaultPreferences() Preferences {
	return Preferences{
		TemperatureUnit:  Celsius,
		SelectedDates:    []string{},
		PreferredAirport: "",
	}
}
