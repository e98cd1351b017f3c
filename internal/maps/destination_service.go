package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrDestinationNotFound is returned when geocoding yields no result.
var ErrDestinationNotFound = errors.New("destination not found")

// Destination is a simplified geocoding result.
type Destination struct {
	Query            string
	FormattedAddress string
	Country          string
	PlaceID          string
	Lat              float64
	Lng              float64
}

// DestinationService resolves free-text destinations with the Google Geocoding API.
type DestinationService struct {
	client *maps.Client
}

// NewDestinationService creates a DestinationService with the given API key.
// Extra client options (e.g. maps.WithBaseURL in tests) are appended.
func NewDestinationService(apiKey string, opts ...maps.ClientOption) (*DestinationService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DestinationService{client: client}, nil
}

// Resolve geocodes query and returns the best match.
func (s *DestinationService) Resolve(ctx context.Context, query string) (*Destination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrDestinationNotFound
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrDestinationNotFound
	}

	best := results[0]
	d := &Destination{
		Query:            query,
		FormattedAddress: best.FormattedAddress,
		PlaceID:          best.PlaceID,
		Lat:              best.Geometry.Location.Lat,
		Lng:              best.Geometry.Location.Lng,
	}
	for _, c := range best.AddressComponents {
		if hasType(c.Types, "country") {
			d.Country = c.LongName
			break
		}
	}
	return d, nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
