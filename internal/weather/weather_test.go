package weather

import (
	"math"
	"testing"
)

func TestTemperatureConversionFixedPoints(t *testing.T) {
	if got := ToFahrenheit(0); got != 32 {
		t.Fatalf("ToFahrenheit(0) = %v, want 32", got)
	}
	if got := ToFahrenheit(100); got != 212 {
		t.Fatalf("ToFahrenheit(100) = %v, want 212", got)
	}
	if got := ToCelsius(32); got != 0 {
		t.Fatalf("ToCelsius(32) = %v, want 0", got)
	}
}

func TestTemperatureConversionRoundTrip(t *testing.T) {
	for _, c := range []float64{-273.15, -40, -17.5, 0, 0.1, 21, 36.6, 100, 1e6} {
		got := ToCelsius(ToFahrenheit(c))
		if math.Abs(got-c) > 1e-9*math.Max(1, math.Abs(c)) {
			t.Fatalf("ToCelsius(ToFahrenheit(%v)) = %v, want %v", c, got, c)
		}
	}
}

func TestSnapshotConvertTwentyCelsius(t *testing.T) {
	s := Snapshot{Temperature: 20, Code: "clear"}

	us := s.Convert(Metric, Imperial)
	if us.Rounded() != 68 {
		t.Fatalf("Rounded() after si->us = %d, want 68", us.Rounded())
	}
	back := us.Convert(Imperial, Metric)
	if back.Rounded() != 20 {
		t.Fatalf("Rounded() after us->si = %d, want 20", back.Rounded())
	}
	if same := s.Convert(Metric, Metric); same != s {
		t.Fatalf("Convert(si, si) = %#v, want unchanged %#v", same, s)
	}
}

func TestUnitSystemToggleAndLabel(t *testing.T) {
	if Metric.Toggle() != Imperial || Imperial.Toggle() != Metric {
		t.Fatalf("Toggle did not flip between si and us")
	}
	if UnitSystem("kelvin").Toggle() != Imperial {
		t.Fatalf("unknown unit system should toggle to imperial")
	}
	if Metric.Label() != "Metric Units (C)" || Imperial.Label() != "Imperial Units (F)" {
		t.Fatalf("labels = %q/%q", Metric.Label(), Imperial.Label())
	}
	if UnitSystem("kelvin").Valid() {
		t.Fatalf("Valid(kelvin) = true, want false")
	}
}

func TestIconMapping(t *testing.T) {
	seen := make(map[string]int)
	for _, g := range iconGroups {
		for _, code := range g.codes {
			seen[code]++
		}
	}
	for code, n := range seen {
		if n != 1 {
			t.Fatalf("code %q appears in %d groups, want exactly 1", code, n)
		}
		if Icon(code) == "" {
			t.Fatalf("Icon(%q) = empty, want a glyph", code)
		}
	}
	if len(iconByCode) != len(seen) {
		t.Fatalf("iconByCode has %d codes, want %d", len(iconByCode), len(seen))
	}

	cases := map[string]string{
		"clear":            "☀️",
		"drizzle":          "🌧",
		"freezing_drizzle": "🌨",
		"fog_light":        "🌫",
		"volcanic_ash":     "",
		"":                 "",
	}
	for code, want := range cases {
		if got := Icon(code); got != want {
			t.Fatalf("Icon(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := (Snapshot{Temperature: 19.6, Code: "cloudy"}).Title(); got != "☁️ 20°" {
		t.Fatalf("Title() = %q, want %q", got, "☁️ 20°")
	}
	if got := (Snapshot{Temperature: -0.4, Code: "unmapped"}).Title(); got != "0°" {
		t.Fatalf("Title() = %q, want %q", got, "0°")
	}
}
