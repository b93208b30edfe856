package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"holicast/datasource"
	"holicast/models"
	"holicast/ranking"
	"holicast/score"
	"holicast/store"
	"holicast/travel"
)

// Server represents the API server
type Server struct {
	locations *store.Store
	forecasts *ForecastStore
	source    datasource.ForecastSource
	geocoder  datasource.GeocodingSource
	server    *http.Server
	refresh   func() // triggers an asynchronous forecast refresh after mutations
}

// NewServer creates a new API server
func NewServer(locations *store.Store, forecasts *ForecastStore, source datasource.ForecastSource, geocoder datasource.GeocodingSource, port int) *Server {
	mux := http.NewServeMux()

	server := &Server{
		locations: locations,
		forecasts: forecasts,
		source:    source,
		geocoder:  geocoder,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	// Saved locations and search
	mux.HandleFunc("/api/locations", server.handleLocations)
	mux.HandleFunc("/api/locations/", server.handleLocationByID)
	mux.HandleFunc("/api/search", server.handleSearch)

	// Preferences
	mux.HandleFunc("/api/preferences", server.handlePreferences)

	// Forecasts
	mux.HandleFunc("/api/forecast/location/", server.handleForecastByLocation)

	// Ranking views
	mux.HandleFunc("/api/rankings/best-per-day", server.handleBestPerDay)
	mux.HandleFunc("/api/rankings/best-days", server.handleBestDays)
	mux.HandleFunc("/api/rankings/best-break", server.handleBestBreak)
	mux.HandleFunc("/api/rankings/averages", server.handleAverages)

	// Travel links
	mux.HandleFunc("/api/travel/links", server.handleTravelLinks)

	// Health check
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// SetRefreshFunc registers the function used to kick a forecast refresh
// after the saved-location set or preferences change
func (s *Server) SetRefreshFunc(refresh func()) {
	s.refresh = refresh
}

// Start begins the API server
func (s *Server) Start() error {
	fmt.Printf("Starting API server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Handler exposes the server's handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// writeJSON encodes v to the response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error payload
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// snapshot gathers the current saved locations, forecast data and unit,
// the inputs every ranking view derives from
func (s *Server) snapshot() ([]models.SavedLocation, map[int64][]models.DailyForecast, models.TemperatureUnit, error) {
	locations, err := s.locations.Locations()
	if err != nil {
		return nil, nil, models.Celsius, err
	}
	prefs, err := s.locations.Preferences()
	if err != nil {
		return nil, nil, models.Celsius, err
	}
	return locations, s.forecasts.DailyByLocation(), prefs.TemperatureUnit, nil
}

// handleLocations handles the saved-location collection
func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		locations, err := s.locations.Locations()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load locations: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"locations": locations,
			"count":     len(locations),
		})

	case http.MethodPost:
		var loc models.Location
		if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid location payload: %v", err))
			return
		}
		if loc.ID == 0 {
			writeError(w, http.StatusBadRequest, "Location id is required")
			return
		}
		if err := s.locations.AddLocation(loc); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save location: %v", err))
			return
		}
		if s.refresh != nil {
			go s.refresh()
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{"saved": loc.ID})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLocationByID handles removal of a single saved location
func (s *Server) handleLocationByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.URL.Path[len("/api/locations/"):]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid location id: %s", idStr))
		return
	}

	if err := s.locations.RemoveLocation(id); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to remove location: %v", err))
		return
	}
	s.forecasts.Remove(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"removed": id})
}

// handleSearch resolves a free-text place query
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	results, err := s.geocoder.SearchLocations(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Location search failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// preferencesPayload is the PUT body for preferences; nil fields are left unchanged
type preferencesPayload struct {
	TemperatureUnit  *string   `json:"temperatureUnit"`
	SelectedDates    *[]string `json:"selectedDates"`
	PreferredAirport *string   `json:"preferredAirport"`
}

// handlePreferences gets or updates the user preferences
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prefs, err := s.locations.Preferences()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load preferences: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, prefs)

	case http.MethodPut:
		var payload preferencesPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid preferences payload: %v", err))
			return
		}

		if payload.TemperatureUnit != nil {
			unit := models.TemperatureUnit(*payload.TemperatureUnit)
			if unit != models.Celsius && unit != models.Fahrenheit {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown temperature unit: %s", *payload.TemperatureUnit))
				return
			}
			if err := s.locations.SetTemperatureUnit(unit); err != nil {
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save preferences: %v", err))
				return
			}
		}
		if payload.SelectedDates != nil {
			if err := s.locations.SetSelectedDates(*payload.SelectedDates); err != nil {
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save preferences: %v", err))
				return
			}
		}
		if payload.PreferredAirport != nil {
			if err := s.locations.SetPreferredAirport(strings.ToUpper(strings.TrimSpace(*payload.PreferredAirport))); err != nil {
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save preferences: %v", err))
				return
			}
		}

		if payload.TemperatureUnit != nil && s.refresh != nil {
			// Unit changes invalidate every stored horizon
			go s.refresh()
		}

		prefs, err := s.locations.Preferences()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load preferences: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, prefs)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleForecastByLocation serves the stored daily horizon for a saved
// location, or its hourly series for one day fetched on demand
func (s *Server) handleForecastByLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := r.URL.Path[len("/api/forecast/location/"):]
	pathParts := strings.Split(path, "/")
	id, err := strconv.ParseInt(pathParts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid location id: %s", pathParts[0]))
		return
	}

	// Hourly detail is fetched on demand per (location, date), not stored
	if len(pathParts) > 1 && pathParts[1] == "hourly" {
		s.serveHourly(w, r, id)
		return
	}

	fc, exists := s.forecasts.Forecast(id)
	fetchErr, failed := s.forecasts.FetchError(id)

	if !exists && !failed {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No forecast data yet for location %d", id))
		return
	}

	response := map[string]interface{}{
		"locationId": id,
		"timestamp":  time.Now(),
	}
	if exists {
		response["location"] = fc.Location
		response["daily"] = fc.Daily
		if updated, ok := s.forecasts.UpdatedAt(id); ok {
			response["updated"] = updated
		}
	}
	if failed {
		response["fetchError"] = fetchErr
	}

	writeJSON(w, http.StatusOK, response)
}

// serveHourly fetches one day's hourly series for a saved location
func (s *Server) serveHourly(w http.ResponseWriter, r *http.Request, id int64) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid or missing date: %q", date))
		return
	}

	loc, ok := s.savedLocation(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Location %d is not saved", id))
		return
	}

	prefs, err := s.locations.Preferences()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load preferences: %v", err))
		return
	}

	hourly, err := s.source.FetchHourlyForecasts(r.Context(), loc.Latitude, loc.Longitude, date, prefs.TemperatureUnit)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Failed to fetch hourly forecast: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locationId": id,
		"date":       date,
		"hourly":     hourly,
	})
}

func (s *Server) savedLocation(id int64) (models.SavedLocation, bool) {
	locations, err := s.locations.Locations()
	if err != nil {
		return models.SavedLocation{}, false
	}
	for _, loc := range locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.SavedLocation{}, false
}

// scoredDayView augments a ranking entry with the condition metadata the
// presentation layer wants alongside the score
func scoredDayView(day models.ScoredDay) map[string]interface{} {
	info := models.WeatherInfoForCode(day.Forecast.DaytimeWeatherCode)
	return map[string]interface{}{
		"date":      day.Forecast.Date,
		"location":  day.Location,
		"forecast":  day.Forecast,
		"score":     day.Score,
		"condition": info.Condition,
		"label":     info.Label,
	}
}

// handleBestPerDay serves the best destination for each horizon day
func (s *Server) handleBestPerDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locations, forecasts, unit, err := s.snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load state: %v", err))
		return
	}

	dates := ranking.HorizonDates(time.Now())
	winners := ranking.BestPerDay(dates, locations, forecasts, unit)

	entries := make([]map[string]interface{}, 0, len(winners))
	for _, winner := range winners {
		entries = append(entries, scoredDayView(winner))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":     entries,
		"topDates": ranking.TopDates(winners, 5),
		"unit":     unit,
	})
}

// handleBestDays serves the full ranked day list for one destination
func (s *Server) handleBestDays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.URL.Query().Get("location")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid location id: %q", idStr))
		return
	}

	loc, ok := s.savedLocation(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Location %d is not saved", id))
		return
	}

	prefs, err := s.locations.Preferences()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load preferences: %v", err))
		return
	}

	fc, _ := s.forecasts.Forecast(id)
	days := ranking.BestDaysForDestination(ranking.HorizonDates(time.Now()), loc, fc.Daily, prefs.TemperatureUnit)

	entries := make([]map[string]interface{}, 0, len(days))
	for _, day := range days {
		entries = append(entries, scoredDayView(day))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": loc,
		"days":     entries,
		"unit":     prefs.TemperatureUnit,
	})
}

// handleBestBreak serves the best contiguous multi-day window per destination
func (s *Server) handleBestBreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	length := 0
	if lengthStr := r.URL.Query().Get("length"); lengthStr != "" {
		if l, err := strconv.Atoi(lengthStr); err == nil {
			length = l
		}
	}
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	locations, forecasts, unit, err := s.snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load state: %v", err))
		return
	}

	// Degenerate parameters fall through to an empty result, not an error
	breaks := ranking.BestBreaks(start, end, length, locations, forecasts, unit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"breaks": breaks,
		"count":  len(breaks),
		"unit":   unit,
	})
}

// handleAverages serves the average score per saved location over the
// selected dates, used to sort the destination list
func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locations, forecasts, unit, err := s.snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load state: %v", err))
		return
	}

	selected := []string{}
	if datesParam := r.URL.Query().Get("dates"); datesParam != "" {
		selected = strings.Split(datesParam, ",")
	} else if prefs, err := s.locations.Preferences(); err == nil {
		selected = prefs.SelectedDates
	}

	wanted := make(map[string]bool, len(selected))
	for _, d := range selected {
		wanted[d] = true
	}

	type entry struct {
		Location models.SavedLocation `json:"location"`
		Score    int                  `json:"score"`
	}
	entries := make([]entry, 0, len(locations))
	for _, loc := range locations {
		var matching []models.DailyForecast
		for _, f := range forecasts[loc.ID] {
			if wanted[f.Date] {
				matching = append(matching, f)
			}
		}
		entries = append(entries, entry{Location: loc, Score: score.Average(matching, unit)})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"averages": entries,
		"dates":    selected,
		"unit":     unit,
	})
}

// handleTravelLinks builds the external flight and package search URLs for
// a destination and date set
func (s *Server) handleTravelLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.URL.Query().Get("location")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid location id: %q", idStr))
		return
	}
	loc, ok := s.savedLocation(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Location %d is not saved", id))
		return
	}

	var dates []string
	if datesParam := r.URL.Query().Get("dates"); datesParam != "" {
		dates = strings.Split(datesParam, ",")
	} else if prefs, err := s.locations.Preferences(); err == nil {
		dates = prefs.SelectedDates
	}

	airport := ""
	if prefs, err := s.locations.Preferences(); err == nil {
		airport = prefs.PreferredAirport
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flights":  travel.BuildFlightSearchURL(loc.Name, dates, airport),
		"packages": travel.BuildPackageSearchURL(loc.Name, dates, airport, loc.Region, loc.Country),
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
