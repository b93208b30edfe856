package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holicast/api"
	"holicast/cache"
	"holicast/collector"
	"holicast/datasource"
	"holicast/models"
	"holicast/providers/openmeteo"
	"holicast/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	refreshInterval := flag.Duration("refresh", 30*time.Minute, "Forecast refresh interval")
	dbPath := flag.String("db", envOr("HOLICAST_DB", "holicast.db"), "Path to the SQLite database")
	cacheTTL := flag.Duration("cache", 30*time.Minute, "Forecast cache duration")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	// Open the saved-location / preferences store
	locations, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", *dbPath, err)
	}
	defer locations.Close()

	// Build the Open-Meteo source chain: provider -> rate limiter -> cache
	provider := openmeteo.New()
	var forecastSource datasource.ForecastSource = provider
	var geocoder datasource.GeocodingSource = provider

	if *enableRateLimiting {
		// Open-Meteo's free tier is generous but not unlimited; stay polite
		forecastSource = datasource.NewRateLimitedForecastSource(provider, 5.0, 10)
		geocoder = datasource.NewRateLimitedGeocodingSource(provider, 2.0, 5)
		log.Println("Applied rate limiting to Open-Meteo provider")
	}

	forecastSource = cache.NewCachedForecastSource(forecastSource, *cacheTTL)

	// In-memory forecast snapshots, filled by the collector
	forecasts := api.NewForecastStore()
	coll := collector.New(forecastSource, forecasts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot := func() ([]models.SavedLocation, models.TemperatureUnit) {
		saved, err := locations.Locations()
		if err != nil {
			log.Printf("Error loading saved locations: %v", err)
			return nil, models.Celsius
		}
		prefs, err := locations.Preferences()
		if err != nil {
			log.Printf("Error loading preferences: %v", err)
			return saved, models.Celsius
		}
		return saved, prefs.TemperatureUnit
	}

	refresh := func() {
		saved, unit := snapshot()
		coll.Refresh(ctx, saved, unit)
	}

	// Any store mutation invalidates in-flight fetches; the next refresh
	// recomputes from the new snapshot
	locations.Subscribe(coll.Invalidate)

	// Create the API server
	server := api.NewServer(locations, forecasts, forecastSource, geocoder, *port)
	server.SetRefreshFunc(refresh)

	// Start periodic collection
	stopCollector := coll.Start(ctx, *refreshInterval, snapshot)

	// Periodically drop horizons that stopped refreshing successfully
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if pruned := forecasts.PruneOld(48 * time.Hour); pruned > 0 {
					log.Printf("Pruned %d stale forecast horizons", pruned)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	cancel()
	stopCollector()
	fmt.Println("Shutdown complete")
}

// envOr returns the environment value for key, or fallback when unset
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
