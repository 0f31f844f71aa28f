package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/geocode"
)

// ErrUpstream marks a geocoding failure caused by the external service.
// Callers show a neutral message and let the user proceed manually.
var ErrUpstream = errors.New("service: geocoding upstream unavailable")

// Geocoder interface for dependency injection
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
	Reverse(ctx context.Context, lat, lng float64) (*geocode.Result, error)
}

// GeocodeService contains the business logic for address lookups.
type GeocodeService struct {
	geocoder Geocoder
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(g Geocoder) *GeocodeService {
	return &GeocodeService{geocoder: g}
}

// Search resolves a free-text address query to candidate coordinates.
func (s *GeocodeService) Search(ctx context.Context, query string) ([]geocode.Result, error) {
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty")
	}

	results, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return results, nil
}

// Reverse resolves coordinates to the nearest known address. A nil result
// with nil error means the upstream found nothing nearby.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lng float64) (*geocode.Result, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", lng)
	}

	result, err := s.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return result, nil
}
