package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/store"
)

// ErrUnknownType is returned when a type query names a category outside
// the recognized set.
var ErrUnknownType = errors.New("service: unknown location type")

// LocationStore interface for dependency injection
type LocationStore interface {
	List(ctx context.Context, filter store.ListFilter) ([]models.Location, error)
	GetByID(ctx context.Context, id string) (*models.Location, error)
}

// LocationService composes the type and bounds filters over the store.
type LocationService struct {
	store LocationStore
}

// NewLocationService creates a new location service
func NewLocationService(s LocationStore) *LocationService {
	return &LocationService{store: s}
}

// List parses the raw query parameters and returns matching locations.
// An empty typeParam or boundsParam applies no restriction. An unknown
// type value is a caller error; a malformed bounds value is ignored so a
// bad client query still gets type-only results.
func (s *LocationService) List(ctx context.Context, typeParam, boundsParam string) ([]models.Location, error) {
	var filter store.ListFilter

	if typeParam != "" {
		t := models.LocationType(typeParam)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeParam)
		}
		filter.Type = &t
	}

	if boundsParam != "" {
		b, err := models.ParseBounds(boundsParam)
		if err != nil {
			log.Debug().Str("bounds", boundsParam).Err(err).
				Msg("ignoring malformed bounds filter")
		} else {
			filter.Bounds = &b
		}
	}

	locations, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list locations: %w", err)
	}

	return locations, nil
}

// Get returns the location with the given id. Passes through
// store.ErrNotFound so callers can map it to a 404.
func (s *LocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	loc, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get location: %w", err)
	}
	return loc, nil
}
