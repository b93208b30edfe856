package models

// Condition is the display-independent category for a WMO weather code
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionFoggy        Condition = "foggy"
	ConditionDrizzle      Condition = "drizzle"
	ConditionRain         Condition = "rain"
	ConditionFreezingRain Condition = "freezing-rain"
	ConditionSnow         Condition = "snow"
	ConditionSnowGrains   Condition = "snow-grains"
	ConditionRainShowers  Condition = "rain-showers"
	ConditionSnowShowers  Condition = "snow-showers"
	ConditionThunderstorm Condition = "thunderstorm"
)

// WeatherInfo describes a WMO weather code for presentation purposes
type WeatherInfo struct {
	Condition Condition `json:"condition"`
	Label     string    `json:"label"`
}

// WMO weather interpretation codes (WW), per https://open-meteo.com/en/docs
var codeInfo = map[int]WeatherInfo{
	0:  {ConditionClear, "Clear sky"},
	1:  {ConditionClear, "Mainly clear"},
	2:  {ConditionPartlyCloudy, "Partly cloudy"},
	3:  {ConditionCloudy, "Overcast"},
	45: {ConditionFoggy, "Fog"},
	48: {ConditionFoggy, "Depositing rime fog"},
	51: {ConditionDrizzle, "Light drizzle"},
	53: {ConditionDrizzle, "Moderate drizzle"},
	55: {ConditionDrizzle, "Dense drizzle"},
	56: {ConditionFreezingRain, "Light freezing drizzle"},
	57: {ConditionFreezingRain, "Dense freezing drizzle"},
	61: {ConditionRain, "Slight rain"},
	63: {ConditionRain, "Moderate rain"},
	65: {ConditionRain, "Heavy rain"},
	66: {ConditionFreezingRain, "Light freezing rain"},
	67: {ConditionFreezingRain, "Heavy freezing rain"},
	71: {ConditionSnow, "Slight snowfall"},
	73: {ConditionSnow, "Moderate snowfall"},
	75: {ConditionSnow, "Heavy snowfall"},
	77: {ConditionSnowGrains, "Snow grains"},
	80: {ConditionRainShowers, "Slight rain showers"},
	81: {ConditionRainShowers, "Moderate rain showers"},
	82: {ConditionRainShowers, "Violent rain showers"},
	85: {ConditionSnowShowers, "Slight snow showers"},
	86: {ConditionSnowShowers, "Heavy snow showers"},
	95: {ConditionThunderstorm, "Thunderstorm"},
	96: {ConditionThunderstorm, "Thunderstorm with slight hail"},
	99: {ConditionThunderstorm, "Thunderstorm with heavy hail"},
}

// WeatherInfoForCode returns the metadata for a WMO code; unknown codes map
// to a generic default rather than an error.
func WeatherInfoForCode(code int) WeatherInfo {
	if info, ok := codeInfo[code]; ok {
		return info
	}
	return WeatherInfo{ConditionClear, "Unknown"}
}
