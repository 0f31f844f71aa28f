package models

// TypeFilter maps each category to an enabled flag. Unknown categories are
// hidden rather than shown.
type TypeFilter map[LocationType]bool

// AllTypes returns a filter with every recognized category enabled.
func AllTypes() TypeFilter {
	return TypeFilter{
		TypeFoodBank:        true,
		TypeCommunityFridge: true,
		TypeFoodBox:         true,
	}
}

// Visible reports whether locations of type t should be shown.
func (f TypeFilter) Visible(t LocationType) bool {
	return f[t]
}
