// Package store persists the canonical location set and the pending
// submission queue. The flat-file backend is the default; a Postgres
// backend implements the same contracts so the medium stays swappable.
package store

import (
	"errors"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// ErrNotFound is returned by lookups when no location has the given id.
var ErrNotFound = errors.New("location not found")

// ListFilter narrows a location listing. Nil fields apply no restriction;
// set fields combine with logical AND.
type ListFilter struct {
	Type   *models.LocationType
	Bounds *models.Bounds
}

// Matches reports whether loc satisfies every set restriction.
func (f ListFilter) Matches(loc models.Location) bool {
	if f.Type != nil && loc.Type != *f.Type {
		return false
	}
	if f.Bounds != nil && !f.Bounds.Contains(loc.Coordinates) {
		return false
	}
	return true
}
