package openmeteo

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"holicast/datasource"
	"holicast/models"
)

// forecastDays is the fixed horizon fetched for every location
const forecastDays = 16

// dailyResponse represents the daily forecast API response structure.
// Optional series arrive as nullable entries, hence the pointer slices.
type dailyResponse struct {
	Daily struct {
		Time                        []string   `json:"time"`
		WeatherCode                 []int      `json:"weather_code"`
		TemperatureMax              []float64  `json:"temperature_2m_max"`
		TemperatureMin              []float64  `json:"temperature_2m_min"`
		PrecipitationSum            []*float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []*int     `json:"precipitation_probability_max"`
		WindSpeedMax                []float64  `json:"wind_speed_10m_max"`
		UVIndexMax                  []float64  `json:"uv_index_max"`
		Sunrise                     []string   `json:"sunrise"`
		Sunset                      []string   `json:"sunset"`
	} `json:"daily"`
	Hourly struct {
		Time        []string `json:"time"`
		WeatherCode []int    `json:"weather_code"`
	} `json:"hourly"`
}

// FetchDailyForecasts gets the 16-day daily horizon from Open-Meteo. The
// hourly weather-code series is requested alongside so the daytime-prominent
// code can be derived for each day.
func (p *Provider) FetchDailyForecasts(ctx context.Context, lat, lon float64, unit models.TemperatureUnit) ([]models.DailyForecast, error) {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("daily", strings.Join([]string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_sum",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"uv_index_max",
		"sunrise",
		"sunset",
	}, ","))
	params.Add("hourly", "weather_code")
	params.Add("temperature_unit", temperatureUnitParam(string(unit)))
	params.Add("wind_speed_unit", windUnitParam(string(unit)))
	params.Add("timezone", "auto")
	params.Add("forecast_days", strconv.Itoa(forecastDays))

	body, err := p.get(ctx, fmt.Sprintf("%s/forecast", p.weatherBaseURL), params)
	if err != nil {
		return nil, err
	}

	var response dailyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	d := response.Daily
	forecasts := make([]models.DailyForecast, 0, len(d.Time))
	for i := range d.Time {
		if i >= len(d.WeatherCode) || i >= len(d.TemperatureMax) || i >= len(d.TemperatureMin) ||
			i >= len(d.WindSpeedMax) || i >= len(d.UVIndexMax) || i >= len(d.Sunrise) || i >= len(d.Sunset) {
			break
		}

		daytimeCode := datasource.DaytimeProminentCode(
			d.Time[i], d.Sunrise[i], d.Sunset[i],
			response.Hourly.Time, response.Hourly.WeatherCode,
			d.WeatherCode[i],
		)

		forecasts = append(forecasts, models.DailyForecast{
			Date:                     d.Time[i],
			WeatherCode:              d.WeatherCode[i],
			DaytimeWeatherCode:       daytimeCode,
			TempMax:                  int(math.Round(d.TemperatureMax[i])),
			TempMin:                  int(math.Round(d.TemperatureMin[i])),
			PrecipitationSum:         floatOrZero(d.PrecipitationSum, i),
			PrecipitationProbability: intOrZero(d.PrecipitationProbabilityMax, i),
			WindSpeedMax:             int(math.Round(d.WindSpeedMax[i])),
			UVIndexMax:               int(math.Round(d.UVIndexMax[i])),
			Sunrise:                  d.Sunrise[i],
			Sunset:                   d.Sunset[i],
		})
	}

	return forecasts, nil
}

// hourlyResponse represents the hourly forecast API response structure
type hourlyResponse struct {
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature              []float64  `json:"temperature_2m"`
		WeatherCode              []int      `json:"weather_code"`
		Humidity                 []float64  `json:"relative_humidity_2m"`
		PrecipitationProbability []*int     `json:"precipitation_probability"`
		Precipitation            []*float64 `json:"precipitation"`
		WindSpeed                []float64  `json:"wind_speed_10m"`
		WindDirection            []int      `json:"wind_direction_10m"`
		UVIndex                  []float64  `json:"uv_index"`
		IsDay                    []int      `json:"is_day"`
		Visibility               []float64  `json:"visibility"`
		ApparentTemperature      []float64  `json:"apparent_temperature"`
	} `json:"hourly"`
}

// FetchHourlyForecasts gets the hourly series for one calendar day
func (p *Provider) FetchHourlyForecasts(ctx context.Context, lat, lon float64, date string, unit models.TemperatureUnit) ([]models.HourlyForecast, error) {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("hourly", strings.Join([]string{
		"temperature_2m",
		"weather_code",
		"relative_humidity_2m",
		"precipitation_probability",
		"precipitation",
		"wind_speed_10m",
		"wind_direction_10m",
		"uv_index",
		"is_day",
		"visibility",
		"apparent_temperature",
	}, ","))
	params.Add("temperature_unit", temperatureUnitParam(string(unit)))
	params.Add("wind_speed_unit", windUnitParam(string(unit)))
	params.Add("timezone", "auto")
	params.Add("start_date", date)
	params.Add("end_date", date)

	body, err := p.get(ctx, fmt.Sprintf("%s/forecast", p.weatherBaseURL), params)
	if err != nil {
		return nil, err
	}

	var response hourlyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	h := response.Hourly
	hourly := make([]models.HourlyForecast, 0, len(h.Time))
	for i := range h.Time {
		if i >= len(h.Temperature) || i >= len(h.WeatherCode) || i >= len(h.Humidity) ||
			i >= len(h.WindSpeed) || i >= len(h.WindDirection) || i >= len(h.UVIndex) ||
			i >= len(h.IsDay) || i >= len(h.Visibility) || i >= len(h.ApparentTemperature) {
			break
		}

		hourly = append(hourly, models.HourlyForecast{
			Time:                     h.Time[i],
			Temperature:              int(math.Round(h.Temperature[i])),
			WeatherCode:              h.WeatherCode[i],
			Humidity:                 h.Humidity[i],
			PrecipitationProbability: intOrZero(h.PrecipitationProbability, i),
			Precipitation:            floatOrZero(h.Precipitation, i),
			WindSpeed:                int(math.Round(h.WindSpeed[i])),
			WindDirection:            h.WindDirection[i],
			UVIndex:                  int(math.Round(h.UVIndex[i])),
			IsDay:                    h.IsDay[i] == 1,
			Visibility:               h.Visibility[i],
			FeelsLike:                int(math.Round(h.ApparentTemperature[i])),
		})
	}

	return hourly, nil
}

// get executes a GET request and returns the body for 200 responses
func (p *Provider) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// floatOrZero reads an optional series entry, defaulting missing values to 0
func floatOrZero(series []*float64, i int) float64 {
	if i >= len(series) || series[i] == nil {
		return 0
	}
	return *series[i]
}

// intOrZero reads an optional series entry, defaulting missing values to 0
func intOrZero(series []*int, i int) int {
	if i >= len(series) || series[i] == nil {
		return 0
	}
	return *series[i]
}
