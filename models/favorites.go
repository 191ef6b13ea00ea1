package models

import "encoding/json"

type FavoriteCategory string

const (
	FavoriteLocations  FavoriteCategory = "locations"
	FavoriteActivities FavoriteCategory = "activities"
)

func (c FavoriteCategory) Valid() bool {
	return c == FavoriteLocations || c == FavoriteActivities
}

// Favorites is the opaque client-side list kept per category.
type Favorites struct {
	Category FavoriteCategory  `json:"category"`
	Items    []json.RawMessage `json:"items"`
}
