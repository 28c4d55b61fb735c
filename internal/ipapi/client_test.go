package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/five82/weatherbar/internal/fault"
)

func TestLookup_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "WeatherBar/test" {
			t.Errorf("User-Agent = %q, want WeatherBar/test", ua)
		}
		_, _ = w.Write([]byte(`{"status":"success","lat":-37.81,"lon":144.96,"city":"Melbourne","zip":"3000","regionName":"Victoria","country":"Australia"}`))
	}))
	t.Cleanup(server.Close)

	loc, err := NewClient(server.URL, "WeatherBar/test", nil).Lookup(context.Background())
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if loc.Latitude != -37.81 || loc.Longitude != 144.96 {
		t.Fatalf("Lookup coords = %v,%v, want -37.81,144.96", loc.Latitude, loc.Longitude)
	}
	if got := loc.DisplayName(); got != "Melbourne 3000, Victoria, Australia" {
		t.Fatalf("DisplayName = %q, want %q", got, "Melbourne 3000, Victoria, Australia")
	}
}

func TestLookup_NotFoundCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status fail", http.StatusOK, `{"status":"fail","message":"private range"}`},
		{"error flag", http.StatusOK, `{"error":true,"reason":"RateLimited"}`},
		{"missing city", http.StatusOK, `{"status":"success","lat":1,"lon":2}`},
		{"http error", http.StatusTooManyRequests, `{}`},
		{"server error", http.StatusBadGateway, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, "", nil).Lookup(context.Background())
			if got := fault.KindOf(err); got != fault.LocationNotFound {
				t.Fatalf("Lookup kind = %v, want LocationNotFound (err %v)", got, err)
			}
		})
	}
}

func TestLookup_ServiceErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not-json`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "", nil)
	_, err := c.Lookup(context.Background())
	if got := fault.KindOf(err); got != fault.ServiceError {
		t.Fatalf("Lookup kind = %v, want ServiceError (err %v)", got, err)
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()

	down := NewClient(addr, "", nil)
	for i := 0; i < 5; i++ {
		_, err = down.Lookup(context.Background())
		if got := fault.KindOf(err); got != fault.ServiceError {
			t.Fatalf("Lookup #%d kind = %v, want ServiceError (err %v)", i, got, err)
		}
	}
}

func TestDisplayName_SkipsEmptyParts(t *testing.T) {
	loc := Location{City: "Reykjavik", Country: "Iceland"}
	if got := loc.DisplayName(); got != "Reykjavik, Iceland" {
		t.Fatalf("DisplayName = %q, want %q", got, "Reykjavik, Iceland")
	}
}
