package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
)

func main() {
	fmt.Println("Holicast API Client Example")
	fmt.Println("===========================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	// Wait a moment for the server to fetch some data
	fmt.Println("Waiting for the service to collect initial forecasts...")
	time.Sleep(5 * time.Second)

	// Get saved locations
	fmt.Println("\nFetching saved locations...")
	locationsData := getJSON(fmt.Sprintf("%s/api/locations", baseURL))
	fmt.Printf("Saved locations: %v\n\n", locationsData["locations"])

	var locations []interface{}
	if locs, ok := locationsData["locations"].([]interface{}); ok {
		locations = locs
	}

	if len(locations) == 0 {
		fmt.Println("No saved locations yet. Add one via POST /api/locations and try again.")
		return
	}

	// Best destination per day across the horizon
	fmt.Println("Fetching the best destination per day...")
	bestPerDay := getJSON(fmt.Sprintf("%s/api/rankings/best-per-day", baseURL))
	prettyPrint("Best per day", bestPerDay)

	// Full ranked day list for the first saved location
	first := locations[0].(map[string]interface{})
	locID := first["id"]
	fmt.Printf("Fetching the best days for location %v...\n", locID)
	bestDays := getJSON(fmt.Sprintf("%s/api/rankings/best-days?location=%v", baseURL, locID))
	prettyPrint("Best days", bestDays)

	// Best 3-day break over the next week
	start := time.Now().UTC().Format("2006-01-02")
	end := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	fmt.Println("Fetching the best 3-day break over the next week...")
	bestBreak := getJSON(fmt.Sprintf("%s/api/rankings/best-break?length=3&start=%s&end=%s", baseURL, start, end))
	prettyPrint("Best break", bestBreak)
}

// getJSON fetches a URL and decodes the JSON body
func getJSON(url string) map[string]interface{} {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var data map[string]interface{}
	json.Unmarshal(body, &data)
	return data
}

// prettyPrint dumps a decoded response with indentation
func prettyPrint(title string, data map[string]interface{}) {
	prettyJSON, _ := json.MarshalIndent(data, "", "  ")
	fmt.Printf("\n%s:\n%s\n", title, string(prettyJSON))
}
