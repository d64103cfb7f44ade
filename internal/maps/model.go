package maps

import "wander/internal/types"

// NearbyPlace is a raw themed search result, before detail resolution.
type NearbyPlace struct {
	PlaceID          string       `json:"place_id"`
	Name             string       `json:"name"`
	Location         types.LatLng `json:"location"`
	Types            []string     `json:"types"`
	Rating           float64      `json:"rating"`
	UserRatingsTotal int          `json:"user_ratings_total"`
}

// PlaceDetails carries the second-stage lookup for a single place.
// A nil *PlaceDetails from the service means the place has no resolvable
// details and should be skipped by callers.
type PlaceDetails struct {
	Address      string   `json:"address"`
	PriceLevel   int      `json:"price_level"`
	OpeningHours []string `json:"opening_hours,omitempty"`
	Reviews      []string `json:"reviews,omitempty"`
}

// Hotel is a lodging search result.
type Hotel struct {
	Name       string       `json:"name"`
	Location   types.LatLng `json:"location"`
	Address    string       `json:"address"`
	Rating     float64      `json:"rating"`
	PriceLevel int          `json:"price_level"`
	Photos     []string     `json:"photos,omitempty"`
	Reviews    []string     `json:"reviews,omitempty"`
}

// Suggestion is an autocomplete prediction for a free-text place query.
type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}
