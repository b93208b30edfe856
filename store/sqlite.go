// Package store persists the saved-location list and user preferences.
// It is the single owner of that state: all mutations go through it and
// subscribers are notified after each one.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/goccy/go-json"

	_ "modernc.org/sqlite"

	"holicast/models"
)

// Store is a SQLite-backed store for saved locations and preferences
// (pure Go driver, modernc.org/sqlite).
type Store struct {
	db *sql.DB

	mu   sync.Mutex
	subs []func()
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL gives better concurrency for the small writes this store does
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS locations (
        id INTEGER PRIMARY KEY,
        name TEXT,
        country TEXT,
        country_code TEXT,
        latitude REAL,
        longitude REAL,
        region TEXT,
        timezone TEXT,
        added_at TEXT,
        position INTEGER
    );
    CREATE TABLE IF NOT EXISTS preferences (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        temperature_unit TEXT,
        selected_dates TEXT,
        preferred_airport TEXT
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Subscribe registers a callback invoked after every mutation. Callbacks run
// synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Locations returns the saved locations in the order they were added
func (s *Store) Locations() ([]models.SavedLocation, error) {
	rows, err := s.db.Query(`SELECT id, name, country, country_code, latitude, longitude, region, timezone, added_at FROM locations ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SavedLocation, 0)
	for rows.Next() {
		var loc models.SavedLocation
		var addedAt string
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Country, &loc.CountryCode,
			&loc.Latitude, &loc.Longitude, &loc.Region, &loc.Timezone, &addedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, addedAt); err == nil {
			loc.AddedAt = t
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// AddLocation saves a location the user selected from a search. Adding a
// location whose id is already saved is a no-op, keeping the list free of
// duplicates.
func (s *Store) AddLocation(loc models.Location) error {
	res, err := s.db.Exec(`INSERT OR IGNORE INTO locations(id, name, country, country_code, latitude, longitude, region, timezone, added_at, position)
        VALUES(?,?,?,?,?,?,?,?,?, (SELECT COALESCE(MAX(position), 0) + 1 FROM locations))`,
		loc.ID, loc.Name, loc.Country, loc.CountryCode, loc.Latitude, loc.Longitude,
		loc.Region, loc.Timezone, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.notify()
	}
	return nil
}

// RemoveLocation deletes a saved location by id. Removing an id that is not
// saved leaves the list unchanged.
func (s *Store) RemoveLocation(id int64) error {
	res, err := s.db.Exec(`DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove location: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.notify()
	}
	return nil
}

// Preferences returns the stored preferences, or the defaults when nothing
// has been stored yet
func (s *Store) Preferences() (models.Preferences, error) {
	prefs := models.DefaultPreferences()

	var unit, dates, airport string
	err := s.db.QueryRow(`SELECT temperature_unit, selected_dates, preferred_airport FROM preferences WHERE id = 1`).
		Scan(&unit, &dates, &airport)
	if err == sql.ErrNoRows {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}

	if unit == string(models.Fahrenheit) {
		prefs.TemperatureUnit = models.Fahrenheit
	}
	if dates != "" {
		var selected []string
		if err := json.Unmarshal([]byte(dates), &selected); err == nil {
			prefs.SelectedDates = selected
		}
	}
	prefs.PreferredAirport = airport
	return prefs, nil
}

// SetTemperatureUnit stores the temperature unit preference
func (s *Store) SetTemperatureUnit(unit models.TemperatureUnit) error {
	return s.updatePreferences(func(p *models.Preferences) {
		p.TemperatureUnit = unit
	})
}

// SetSelectedDates stores the user's selected calendar dates
func (s *Store) SetSelectedDates(dates []string) error {
	return s.updatePreferences(func(p *models.Preferences) {
		p.SelectedDates = dates
	})
}

// SetPreferredAirport stores the preferred origin airport IATA code
func (s *Store) SetPreferredAirport(code string) error {
	return s.updatePreferences(func(p *models.Preferences) {
		p.PreferredAirport = code
	})
}

func (s *Store) updatePreferences(mutate func(*models.Preferences)) error {
	prefs, err := s.Preferences()
	if err != nil {
		return err
	}
	mutate(&prefs)

	dates, err := json.Marshal(prefs.SelectedDates)
	if err != nil {
		return fmt.Errorf("failed to encode selected dates: %w", err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO preferences(id, temperature_unit, selected_dates, preferred_airport) VALUES(1,?,?,?)`,
		string(prefs.TemperatureUnit), string(dates), prefs.PreferredAirport)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	s.notify()
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
