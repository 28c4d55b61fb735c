// Package weather holds the provider-independent weather model: unit systems,
// temperature conversion, the current-conditions snapshot and the icon table.
package weather

import (
	"fmt"
	"math"
	"time"
)

// UnitSystem selects the units the provider reports temperatures in.
type UnitSystem string

const (
	Metric   UnitSystem = "si"
	Imperial UnitSystem = "us"
)

// Valid reports whether u is one of the supported systems.
func (u UnitSystem) Valid() bool {
	return u == Metric || u == Imperial
}

// Toggle returns the other supported system. Anything that is not imperial
// toggles to imperial.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// Label is the menu text for the unit toggle.
func (u UnitSystem) Label() string {
	if u == Imperial {
		return "Imperial Units (F)"
	}
	return "Metric Units (C)"
}

// Snapshot is the latest current-conditions reading.
type Snapshot struct {
	Temperature float64
	Code        string
	FetchedAt   time.Time
}

// Convert returns s with its temperature converted from one unit system to
// another. Converting to the same system is a no-op.
func (s Snapshot) Convert(from, to UnitSystem) Snapshot {
	if from == to {
		return s
	}
	if to == Imperial {
		s.Temperature = ToFahrenheit(s.Temperature)
	} else {
		s.Temperature = ToCelsius(s.Temperature)
	}
	return s
}

// Rounded is the temperature rounded to the nearest whole unit.
func (s Snapshot) Rounded() int {
	return int(math.Round(s.Temperature))
}

// Title renders the menu bar title: icon, rounded temperature and degree mark.
func (s Snapshot) Title() string {
	return TitleFor(Icon(s.Code), s.Rounded())
}

// TitleFor renders a title from an icon glyph and a whole temperature.
func TitleFor(icon string, temp int) string {
	if icon == "" {
		return fmt.Sprintf("%d°", temp)
	}
	return fmt.Sprintf("%s %d°", icon, temp)
}

// ToFahrenheit converts degrees Celsius to Fahrenheit.
func ToFahrenheit(celsius float64) float64 {
	return 9.0/5.0*celsius + 32
}

// ToCelsius converts degrees Fahrenheit to Celsius.
func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5.0 / 9.0
}
