package climacell

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/weather"
)

// Fetcher retrieves current conditions. *Client implements it.
type Fetcher interface {
	FetchCurrent(ctx context.Context, req Request) (weather.Snapshot, error)
}

var _ Fetcher = (*Client)(nil)

// Request is the complete input of one realtime call. The controller builds a
// fresh value for every fetch.
type Request struct {
	Latitude  float64
	Longitude float64
	Units     weather.UnitSystem
	APIKey    string
}

// Validate rejects requests that would be sent with an unresolved location
// (fault.LocationNotFound) or an unsupported unit system (fault.ConfigInvalid).
func (r Request) Validate() error {
	const op = "validate request"
	if math.IsNaN(r.Latitude) || math.IsNaN(r.Longitude) || math.IsInf(r.Latitude, 0) || math.IsInf(r.Longitude, 0) {
		return fault.Newf(fault.LocationNotFound, op, "coordinates %v,%v are not finite", r.Latitude, r.Longitude)
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return fault.Newf(fault.LocationNotFound, op, "coordinates %v,%v out of range", r.Latitude, r.Longitude)
	}
	if !r.Units.Valid() {
		return fault.Newf(fault.ConfigInvalid, op, "unit system %q not supported", r.Units)
	}
	return nil
}

// Client talks to the ClimaCell realtime endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	now       func() time.Time
}

const (
	defaultUserAgent = "WeatherBar/1.0"
	requestTimeout   = 10 * time.Second
)

// Fields requested on every call.
var realtimeFields = []string{"temp", "weather_code"}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// WithClock overrides the timestamp source for snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a Client for the realtime endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse weather endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("weather endpoint %q must be absolute", endpoint)
	}
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		endpoint:  u,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type realtimeResponse struct {
	Temp struct {
		Value *float64 `json:"value"`
		Units string   `json:"units"`
	} `json:"temp"`
	WeatherCode struct {
		Value string `json:"value"`
	} `json:"weather_code"`
}

// FetchCurrent performs one realtime request. Failures are classified as
// fault.InvalidKey (403/401), fault.LocationNotFound (404) or
// fault.ConnectionError (transport failure, any other status, bad body).
func (c *Client) FetchCurrent(ctx context.Context, req Request) (weather.Snapshot, error) {
	const op = "fetch weather"
	if c == nil {
		return weather.Snapshot{}, fmt.Errorf("client is nil")
	}
	if err := req.Validate(); err != nil {
		return weather.Snapshot{}, err
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	values.Set("unit_system", string(req.Units))
	values.Set("apikey", req.APIKey)
	for _, f := range realtimeFields {
		values.Add("fields", f)
	}

	reqURL := *c.endpoint
	reqURL.RawQuery = values.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return weather.Snapshot{}, fault.New(fault.ConnectionError, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return weather.Snapshot{}, fault.Newf(fault.InvalidKey, op, "api returned status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return weather.Snapshot{}, fault.Newf(fault.LocationNotFound, op, "api returned status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return weather.Snapshot{}, fault.Newf(fault.ConnectionError, op, "api returned status %d", resp.StatusCode)
	}

	var payload realtimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fault.New(fault.ConnectionError, op, fmt.Errorf("decode response: %w", err))
	}
	if payload.Temp.Value == nil {
		return weather.Snapshot{}, fault.Newf(fault.ConnectionError, op, "response missing temp.value")
	}

	return weather.Snapshot{
		Temperature: *payload.Temp.Value,
		Code:        payload.WeatherCode.Value,
		FetchedAt:   c.now(),
	}, nil
}
