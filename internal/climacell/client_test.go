package climacell

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/weather"
)

func TestNewClient_RejectsRelativeEndpoint(t *testing.T) {
	if _, err := NewClient("api.climacell.co/v3"); err == nil {
		t.Fatalf("NewClient returned nil error, want error for relative endpoint")
	}
}

func TestFetchCurrent_EncodesQueryAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temp":{"value":21.6,"units":"C"},"weather_code":{"value":"partly_cloudy"}}`))
	}))
	t.Cleanup(server.Close)

	fixed := time.Date(2024, time.March, 5, 10, 11, 12, 0, time.UTC)
	c, err := NewClient(server.URL+"/v3/weather/realtime", WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	snap, err := c.FetchCurrent(ctx, Request{Latitude: 40.5, Longitude: -73.25, Units: weather.Metric, APIKey: "k3y"})
	if err != nil {
		t.Fatalf("FetchCurrent returned error: %v", err)
	}
	if snap.Temperature != 21.6 || snap.Code != "partly_cloudy" || !snap.FetchedAt.Equal(fixed) {
		t.Fatalf("FetchCurrent = %#v, want 21.6 partly_cloudy at %v", snap, fixed)
	}

	if gotQuery.Get("lat") != "40.5" ||
		gotQuery.Get("lon") != "-73.25" ||
		gotQuery.Get("unit_system") != "si" ||
		gotQuery.Get("apikey") != "k3y" {
		t.Fatalf("query = %v, want lat/lon/unit_system/apikey encoded", gotQuery)
	}
	if fields := gotQuery["fields"]; len(fields) != 2 || fields[0] != "temp" || fields[1] != "weather_code" {
		t.Fatalf("fields = %v, want [temp weather_code]", fields)
	}
	if !strings.HasPrefix(gotUserAgent, "WeatherBar/") {
		t.Fatalf("User-Agent = %q, want WeatherBar/*", gotUserAgent)
	}
}

func TestFetchCurrent_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   fault.Kind
	}{
		{"forbidden", http.StatusForbidden, `{}`, fault.InvalidKey},
		{"unauthorized", http.StatusUnauthorized, `{}`, fault.InvalidKey},
		{"not found", http.StatusNotFound, `{}`, fault.LocationNotFound},
		{"server error", http.StatusInternalServerError, `{}`, fault.ConnectionError},
		{"bad json", http.StatusOK, `{not-json`, fault.ConnectionError},
		{"missing temp", http.StatusOK, `{"weather_code":{"value":"clear"}}`, fault.ConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchCurrent(context.Background(), Request{Units: weather.Imperial})
			if got := fault.KindOf(err); got != tt.want {
				t.Fatalf("FetchCurrent kind = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestFetchCurrent_TransportFailureIsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCurrent(context.Background(), Request{Units: weather.Metric})
	if got := fault.KindOf(err); got != fault.ConnectionError {
		t.Fatalf("FetchCurrent kind = %v, want ConnectionError (err %v)", got, err)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want fault.Kind
	}{
		{"valid", Request{Latitude: 1, Longitude: 2, Units: weather.Metric}, fault.None},
		{"nan", Request{Latitude: math.NaN(), Units: weather.Metric}, fault.LocationNotFound},
		{"out of range", Request{Latitude: 91, Units: weather.Metric}, fault.LocationNotFound},
		{"unknown units", Request{Units: "kelvin"}, fault.ConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fault.KindOf(tt.req.Validate()); got != tt.want {
				t.Fatalf("Validate() kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchCurrent_RejectsInvalidRequestWithoutCalling(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCurrent(context.Background(), Request{Latitude: 1, Longitude: 2, Units: "metric"})
	if got := fault.KindOf(err); got != fault.ConfigInvalid {
		t.Fatalf("FetchCurrent kind = %v, want ConfigInvalid (err %v)", got, err)
	}
	if called {
		t.Fatalf("server was called for an invalid request")
	}
}
