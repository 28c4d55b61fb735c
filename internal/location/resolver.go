// Package location turns user text or the machine's public IP into a
// resolved location. It never talks to the user; confirmation is the
// controller's job.
package location

import (
	"context"
	"errors"
	"strings"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/geocode"
	"github.com/five82/weatherbar/internal/ipapi"
)

// Resolved is a location ready to be adopted into the configuration record.
type Resolved struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// IPLocator reports the coarse location of the current public IP.
type IPLocator interface {
	Lookup(ctx context.Context) (ipapi.Location, error)
}

// Resolver combines an IP locator with a geocoder.
type Resolver struct {
	ip  IPLocator
	geo geocode.Geocoder
}

// NewResolver wires a Resolver.
func NewResolver(ip IPLocator, geo geocode.Geocoder) *Resolver {
	return &Resolver{ip: ip, geo: geo}
}

// ResolveByText forward-geocodes query. The returned Name is the geocoder's
// display name; callers that want to keep the typed text replace it.
func (r *Resolver) ResolveByText(ctx context.Context, query string) (Resolved, error) {
	const op = "resolve location"
	query = strings.TrimSpace(query)
	if query == "" {
		return Resolved{}, fault.New(fault.LocationNotFound, op, errors.New("empty query"))
	}

	place, err := r.geo.Forward(ctx, query)
	if err != nil {
		return Resolved{}, reclassify(op, err)
	}
	return Resolved{Latitude: place.Latitude, Longitude: place.Longitude, Name: place.Name}, nil
}

// ResolveCurrent locates the machine by IP and confirms the coordinates
// with a reverse geocode. The name is the IP provider's composite name.
func (r *Resolver) ResolveCurrent(ctx context.Context) (Resolved, error) {
	const op = "resolve current location"

	loc, err := r.ip.Lookup(ctx)
	if err != nil {
		return Resolved{}, reclassify(op, err)
	}

	if _, err := r.geo.Reverse(ctx, loc.Latitude, loc.Longitude); err != nil {
		return Resolved{}, reclassify(op, err)
	}

	return Resolved{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Name:      loc.DisplayName(),
	}, nil
}

// reclassify keeps LocationNotFound and folds every other failure into
// ServiceError.
func reclassify(op string, err error) error {
	if fault.Is(err, fault.LocationNotFound) {
		return fault.New(fault.LocationNotFound, op, err)
	}
	return fault.New(fault.ServiceError, op, err)
}
