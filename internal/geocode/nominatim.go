package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/five82/weatherbar/internal/fault"
)

const defaultUserAgent = "WeatherBar/1.0"

// Nominatim queries an OpenStreetMap Nominatim instance. The public service
// allows one request per second and requires an identifying User-Agent.
type Nominatim struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
}

var _ Geocoder = (*Nominatim)(nil)

// NewNominatim builds a client for the instance at base. hc may be nil.
func NewNominatim(base, userAgent string, hc *http.Client) (*Nominatim, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(base), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse nominatim url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("nominatim url %q must be absolute", base)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	return &Nominatim{
		base:      u,
		http:      hc,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nominatim",
			MaxRequests: 1,
			Interval:    5 * time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forward looks up the best match for query.
func (n *Nominatim) Forward(ctx context.Context, query string) (Place, error) {
	const op = "forward geocode"
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "jsonv2")
	values.Set("limit", "1")

	body, err := n.get(ctx, "/search", values)
	if err != nil {
		return Place{}, fault.New(fault.ServiceError, op, err)
	}

	var hits []nominatimPlace
	if err := json.Unmarshal(body, &hits); err != nil {
		if msg := errorMember(body); msg != "" {
			return Place{}, fault.Newf(fault.LocationNotFound, op, "%s", msg)
		}
		return Place{}, fault.New(fault.ServiceError, op, fmt.Errorf("decode response: %w", err))
	}
	if len(hits) == 0 {
		return Place{}, fault.Newf(fault.LocationNotFound, op, "no results for %q", query)
	}
	place, err := hits[0].place()
	if err != nil {
		return Place{}, fault.New(fault.ServiceError, op, err)
	}
	return place, nil
}

// Reverse looks up the place at lat, lon.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	const op = "reverse geocode"
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("format", "jsonv2")

	body, err := n.get(ctx, "/reverse", values)
	if err != nil {
		return Place{}, fault.New(fault.ServiceError, op, err)
	}
	if msg := errorMember(body); msg != "" {
		return Place{}, fault.Newf(fault.LocationNotFound, op, "%s", msg)
	}

	var hit nominatimPlace
	if err := json.Unmarshal(body, &hit); err != nil {
		return Place{}, fault.New(fault.ServiceError, op, fmt.Errorf("decode response: %w", err))
	}
	if hit.Lat == "" && hit.Lon == "" {
		return Place{}, fault.Newf(fault.LocationNotFound, op, "no place at %v,%v", lat, lon)
	}
	place, err := hit.place()
	if err != nil {
		return Place{}, fault.New(fault.ServiceError, op, err)
	}
	return place, nil
}

// get waits for the rate limiter and runs the request through the breaker.
// Non-2xx responses count as breaker failures.
func (n *Nominatim) get(ctx context.Context, path string, values url.Values) ([]byte, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}

	result, err := n.breaker.Execute(func() (interface{}, error) {
		u := *n.base
		u.Path = strings.TrimRight(u.Path, "/") + path
		u.RawQuery = values.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", n.userAgent)

		resp, err := n.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
		}

		var raw json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return []byte(raw), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// errorMember returns the "error" member of an object body, if any.
func errorMember(body []byte) string {
	var obj struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err != nil || len(obj.Error) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(obj.Error, &msg); err == nil {
		return msg
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(obj.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	return string(obj.Error)
}

func (p nominatimPlace) place() (Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse longitude %q: %w", p.Lon, err)
	}
	return Place{Latitude: lat, Longitude: lon, Name: p.DisplayName}, nil
}
