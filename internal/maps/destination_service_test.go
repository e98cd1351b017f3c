package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"
)

func newTestService(t *testing.T, body string) *DestinationService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewDestinationService("test-key", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewDestinationService: %v", err)
	}
	return svc
}

func TestResolve(t *testing.T) {
	svc := newTestService(t, `{
		"status": "OK",
		"results": [{
			"formatted_address": "Paris, France",
			"place_id": "ChIJD7fiBh9u5kcRYJSMaMOCCwQ",
			"geometry": {"location": {"lat": 48.8566, "lng": 2.3522}},
			"address_components": [
				{"long_name": "Paris", "short_name": "Paris", "types": ["locality", "political"]},
				{"long_name": "France", "short_name": "FR", "types": ["country", "political"]}
			]
		}]
	}`)

	d, err := svc.Resolve(context.Background(), " Paris ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.FormattedAddress != "Paris, France" || d.Country != "France" || d.Query != "Paris" {
		t.Errorf("unexpected destination %+v", d)
	}
	if d.Lat != 48.8566 {
		t.Errorf("lat = %f", d.Lat)
	}
}

func TestResolve_ZeroResults(t *testing.T) {
	svc := newTestService(t, `{"status": "ZERO_RESULTS", "results": []}`)
	_, err := svc.Resolve(context.Background(), "Atlantis")
	if !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	svc := newTestService(t, `{}`)
	if _, err := svc.Resolve(context.Background(), "  "); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}
