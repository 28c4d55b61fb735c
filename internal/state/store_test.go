package state

import (
	"testing"
	"time"

	"github.com/five82/weatherbar/internal/weather"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store

	fetched := time.Date(2024, time.June, 7, 8, 9, 10, 0, time.Local)
	s.Update(weather.Snapshot{Temperature: 21.6, Code: "clear", FetchedAt: fetched})

	snap := s.Snapshot()
	if !snap.HasWeather || snap.Weather.Temperature != 21.6 {
		t.Fatalf("snapshot weather = %#v, want 21.6 HasWeather=true", snap.Weather)
	}
	if snap.Title != weather.Icon("clear")+" 22°" {
		t.Fatalf("Title = %q, want %q", snap.Title, weather.Icon("clear")+" 22°")
	}
	if got, want := snap.UpdatedLabel(), "Last Updated: Jun 07 08:09:10"; got != want {
		t.Fatalf("UpdatedLabel = %q, want %q", got, want)
	}
}

func TestStore_NoConnectionKeepsTemperature(t *testing.T) {
	var s Store

	s.Update(weather.Snapshot{Temperature: 20, Code: "clear", FetchedAt: time.Now()})
	s.MarkNoConnection()

	snap := s.Snapshot()
	if want := weather.NoConnectionIcon + " 20°"; snap.Title != want {
		t.Fatalf("Title = %q, want %q", snap.Title, want)
	}
	if snap.UpdatedLabel() != NoConnectionLabel {
		t.Fatalf("UpdatedLabel = %q, want %q", snap.UpdatedLabel(), NoConnectionLabel)
	}

	s.ReplaceWeather(snap.Weather.Convert(weather.Metric, weather.Imperial))
	if got, want := s.Snapshot().Title, weather.NoConnectionIcon+" 68°"; got != want {
		t.Fatalf("Title after conversion = %q, want %q", got, want)
	}

	s.Update(weather.Snapshot{Temperature: 21, Code: "clear", FetchedAt: time.Now()})
	snap = s.Snapshot()
	if snap.NoConnection || snap.Title != weather.Icon("clear")+" 21°" {
		t.Fatalf("success did not clear no-connection state: %#v", snap)
	}
}

func TestStore_NoConnectionBeforeFirstReading(t *testing.T) {
	var s Store

	s.MarkNoConnection()
	if got := s.Snapshot().Title; got != weather.NoConnectionIcon {
		t.Fatalf("Title = %q, want %q", got, weather.NoConnectionIcon)
	}
}

func TestStore_ReplaceWeatherRetitles(t *testing.T) {
	var s Store

	fetched := time.Date(2024, time.June, 7, 8, 9, 10, 0, time.Local)
	s.Update(weather.Snapshot{Temperature: 20, Code: "rain", FetchedAt: fetched})
	s.ReplaceWeather(weather.Snapshot{Temperature: 68, Code: "rain", FetchedAt: fetched})

	snap := s.Snapshot()
	if snap.Title != weather.Icon("rain")+" 68°" {
		t.Fatalf("Title = %q, want %q", snap.Title, weather.Icon("rain")+" 68°")
	}
	if !snap.LastUpdated.Equal(fetched) {
		t.Fatalf("LastUpdated = %v, want %v", snap.LastUpdated, fetched)
	}
}

func TestStore_Preferences(t *testing.T) {
	var s Store

	s.SetPreferences("Paris", weather.Imperial, true)
	snap := s.Snapshot()
	if snap.Location != "Paris" || snap.UnitsLabel() != "Imperial Units (F)" {
		t.Fatalf("snapshot = %#v, want Paris imperial", snap)
	}
	if snap.ChangeLocationEnabled() {
		t.Fatal("ChangeLocationEnabled() = true in live mode, want false")
	}
	if snap.UpdatedLabel() != "" {
		t.Fatalf("UpdatedLabel = %q before any fetch, want empty", snap.UpdatedLabel())
	}
}
