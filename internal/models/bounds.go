package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds is a viewport rectangle in latitude/longitude degrees. Callers
// must supply South <= North; an inverted box matches no points. Boxes
// crossing the antimeridian (West > East) are not normalized and also
// match nothing.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the point falls inside the box. All four edges
// are inclusive.
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.South && c.Lat <= b.North &&
		c.Lng >= b.West && c.Lng <= b.East
}

// ParseBounds decodes the "north,south,east,west" wire encoding. Exactly
// four comma-separated floats are required.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("bounds: expected 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("bounds: invalid value %q: %w", p, err)
		}
		vals[i] = v
	}

	return Bounds{North: vals[0], South: vals[1], East: vals[2], West: vals[3]}, nil
}
