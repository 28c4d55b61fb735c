package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/five82/weatherbar/internal/fault"
)

// The kelvins/geocoder package keeps its key in a package variable.
var googleKeyMu sync.Mutex

// Indirection for tests.
var (
	googleForward = geocoder.Geocoding
	googleReverse = geocoder.GeocodingReverse
)

// Google geocodes through the Google Maps Geocoding API.
type Google struct {
	apiKey string
}

var _ Geocoder = (*Google)(nil)

// NewGoogle builds a Google backend. The key is mandatory.
func NewGoogle(apiKey string) (*Google, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("google geocoder requires an api key")
	}
	return &Google{apiKey: apiKey}, nil
}

// Forward looks up query as a free-form street address.
func (g *Google) Forward(ctx context.Context, query string) (Place, error) {
	const op = "forward geocode"
	var loc geocoder.Location
	err := g.call(ctx, func() error {
		var err error
		loc, err = googleForward(geocoder.Address{Street: query})
		return err
	})
	if err != nil {
		return Place{}, classifyGoogle(op, err)
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return Place{}, fault.Newf(fault.LocationNotFound, op, "no results for %q", query)
	}
	return Place{Latitude: loc.Latitude, Longitude: loc.Longitude, Name: g.canonicalName(ctx, loc, query)}, nil
}

// canonicalName asks Google for the formatted address of a forward hit, which
// the geocoding call itself does not return. The query stands in when the
// lookup fails.
func (g *Google) canonicalName(ctx context.Context, loc geocoder.Location, query string) string {
	place, err := g.Reverse(ctx, loc.Latitude, loc.Longitude)
	if err != nil || strings.TrimSpace(place.Name) == "" {
		return query
	}
	return place.Name
}

// Reverse returns the first address Google reports at lat, lon.
func (g *Google) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	const op = "reverse geocode"
	var addrs []geocoder.Address
	err := g.call(ctx, func() error {
		var err error
		addrs, err = googleReverse(geocoder.Location{Latitude: lat, Longitude: lon})
		return err
	})
	if err != nil {
		return Place{}, classifyGoogle(op, err)
	}
	if len(addrs) == 0 {
		return Place{}, fault.Newf(fault.LocationNotFound, op, "no place at %v,%v", lat, lon)
	}
	name := addrs[0].FormattedAddress
	if name == "" {
		name = addrs[0].FormatAddress()
	}
	return Place{Latitude: lat, Longitude: lon, Name: name}, nil
}

// call runs fn with the package key set, returning early if ctx ends first.
func (g *Google) call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		googleKeyMu.Lock()
		defer googleKeyMu.Unlock()
		geocoder.ApiKey = g.apiKey
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func classifyGoogle(op string, err error) error {
	msg := strings.ToUpper(err.Error())
	if strings.Contains(msg, "ZERO_RESULTS") || strings.Contains(msg, "NO RESULTS") || strings.Contains(msg, "EMPTY") {
		return fault.New(fault.LocationNotFound, op, err)
	}
	return fault.New(fault.ServiceError, op, fmt.Errorf("google geocoding: %w", err))
}
