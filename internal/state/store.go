package state

import (
	"sync"
	"time"

	"github.com/five82/weatherbar/internal/weather"
)

// UpdatedLayout is the timestamp format of the "last updated" label.
const UpdatedLayout = "Jan 02 15:04:05"

// NoConnectionLabel replaces the last-updated text after a visible
// connection failure.
const NoConnectionLabel = "No Connection"

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Title        string
	Weather      weather.Snapshot
	HasWeather   bool
	Location     string
	Units        weather.UnitSystem
	Live         bool
	NoConnection bool
	LastUpdated  time.Time
}

// UnitsLabel is the text of the unit toggle.
func (s Snapshot) UnitsLabel() string {
	return s.Units.Label()
}

// ChangeLocationEnabled reports whether manual entry is available.
func (s Snapshot) ChangeLocationEnabled() bool {
	return !s.Live
}

// UpdatedLabel renders the last-updated line.
func (s Snapshot) UpdatedLabel() string {
	switch {
	case s.NoConnection:
		return NoConnectionLabel
	case s.LastUpdated.IsZero():
		return ""
	default:
		return "Last Updated: " + s.LastUpdated.Format(UpdatedLayout)
	}
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetPreferences records the parts of the configuration the menu shows.
func (s *Store) SetPreferences(location string, units weather.UnitSystem, live bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Location = location
	s.snapshot.Units = units
	s.snapshot.Live = live
}

// Update records a successful fetch and clears the no-connection state.
// Failed fetches leave the store alone, so the last good reading stays up.
func (s *Store) Update(w weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Weather = w
	s.snapshot.HasWeather = true
	s.snapshot.NoConnection = false
	s.snapshot.Title = w.Title()
	s.snapshot.LastUpdated = w.FetchedAt
}

// ReplaceWeather swaps the displayed reading without touching timestamps,
// as after a unit conversion. The no-connection glyph stays in the title.
func (s *Store) ReplaceWeather(w weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Weather = w
	s.snapshot.HasWeather = true
	s.snapshot.Title = s.title()
}

// MarkNoConnection swaps the weather icon for the no-connection glyph and
// the last-updated label for NoConnectionLabel. The last temperature stays.
func (s *Store) MarkNoConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.NoConnection = true
	s.snapshot.Title = s.title()
}

// title renders the title for the current reading. Callers hold s.mu.
func (s *Store) title() string {
	if !s.snapshot.NoConnection {
		return s.snapshot.Weather.Title()
	}
	if !s.snapshot.HasWeather {
		return weather.NoConnectionIcon
	}
	return weather.TitleFor(weather.NoConnectionIcon, s.snapshot.Weather.Rounded())
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}
