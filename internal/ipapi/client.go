// Package ipapi looks up the coarse location of the current public IP.
package ipapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/five82/weatherbar/internal/fault"
)

// Location is the coarse position reported for the caller's IP.
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Zip       string
	Region    string
	Country   string
}

// DisplayName renders "<city> <zip>, <region>, <country>", skipping empty parts.
func (l Location) DisplayName() string {
	cityZip := strings.TrimSpace(strings.Join([]string{l.City, l.Zip}, " "))
	var parts []string
	for _, p := range []string{cityZip, l.Region, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Client queries an ip-api.com compatible endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	userAgent string
	breaker   *gobreaker.CircuitBreaker
}

const requestTimeout = 10 * time.Second

// NewClient builds a Client for endpoint. hc may be nil.
func NewClient(endpoint, userAgent string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		endpoint:  strings.TrimSpace(endpoint),
		http:      hc,
		userAgent: userAgent,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ip-location",
			MaxRequests: 1,
			Interval:    5 * time.Minute,
			Timeout:     time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

type lookupResponse struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	Error      bool     `json:"error"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	City       string   `json:"city"`
	Zip        string   `json:"zip"`
	RegionName string   `json:"regionName"`
	Country    string   `json:"country"`
}

// errNoLocation marks a reachable provider that had no answer. It never
// counts against the breaker.
var errNoLocation = errors.New("no location for this address")

// Lookup fetches the current coarse location. A failing status, a non-2xx
// response or a missing city is fault.LocationNotFound; transport problems,
// undecodable bodies and an open breaker are fault.ServiceError.
func (c *Client) Lookup(ctx context.Context) (Location, error) {
	const op = "ip lookup"
	if c == nil {
		return Location{}, fmt.Errorf("client is nil")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return Location{}, fault.New(fault.ServiceError, op, err)
	}

	payload, ok := result.(*lookupResponse)
	if !ok || payload == nil {
		return Location{}, fault.New(fault.LocationNotFound, op, errNoLocation)
	}
	if strings.EqualFold(payload.Status, "fail") || payload.Error {
		return Location{}, fault.Newf(fault.LocationNotFound, op, "provider reported failure: %s", payload.Message)
	}
	if strings.TrimSpace(payload.City) == "" || payload.Lat == nil || payload.Lon == nil {
		return Location{}, fault.New(fault.LocationNotFound, op, errNoLocation)
	}

	return Location{
		Latitude:  *payload.Lat,
		Longitude: *payload.Lon,
		City:      strings.TrimSpace(payload.City),
		Zip:       strings.TrimSpace(payload.Zip),
		Region:    strings.TrimSpace(payload.RegionName),
		Country:   strings.TrimSpace(payload.Country),
	}, nil
}

// fetch returns (nil, nil) for a non-2xx answer; only transport and decode
// failures count against the breaker.
func (c *Client) fetch(ctx context.Context) (*lookupResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}
