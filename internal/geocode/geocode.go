// Package geocode turns place names into coordinates and back.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Place is a single geocoding hit.
type Place struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Geocoder resolves free text (Forward) or coordinates (Reverse) to a Place.
// Implementations report fault.LocationNotFound for an empty result and
// fault.ServiceError for anything that kept the provider from answering.
type Geocoder interface {
	Forward(ctx context.Context, query string) (Place, error)
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
}

// Backend names accepted by New.
const (
	BackendNominatim = "nominatim"
	BackendGoogle    = "google"
)

// Options carries the settings a backend may need.
type Options struct {
	Backend      string
	NominatimURL string
	GoogleAPIKey string
	UserAgent    string
	HTTPClient   *http.Client
}

// New returns the backend named in opts.
func New(opts Options) (Geocoder, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendNominatim:
		return NewNominatim(opts.NominatimURL, opts.UserAgent, opts.HTTPClient)
	case BackendGoogle:
		return NewGoogle(opts.GoogleAPIKey)
	default:
		return nil, fmt.Errorf("unknown geocoder backend %q", opts.Backend)
	}
}
