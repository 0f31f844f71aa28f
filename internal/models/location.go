package models

import "math"

// LocationType is the closed category set for food resources.
type LocationType string

const (
	TypeFoodBank        LocationType = "foodbank"
	TypeCommunityFridge LocationType = "community_fridge"
	TypeFoodBox         LocationType = "food_box"
)

// Valid reports whether t is one of the recognized categories.
func (t LocationType) Valid() bool {
	switch t {
	case TypeFoodBank, TypeCommunityFridge, TypeFoodBox:
		return true
	}
	return false
}

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies in the legal latitude/longitude
// ranges. NaN never validates.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Location represents an approved, displayable food resource. JSON field
// names match the canonical data files.
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        LocationType `json:"type"`
	Coordinates Coordinates  `json:"coordinates"`
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	ZipCode     string       `json:"zipCode,omitempty"`
	Hours       string       `json:"hours,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Description string       `json:"description,omitempty"`
}
