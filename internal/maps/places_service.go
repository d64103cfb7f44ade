package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"wander/internal/types"
)

// detailsCacheTTL bounds how long a place-details entry stays in Redis.
const detailsCacheTTL = 24 * time.Hour

// themeTypes maps user-facing trip themes to Google place types.
// Unknown themes fall back to tourist_attraction.
var themeTypes = map[string]maps.PlaceType{
	"culture":   maps.PlaceTypeMuseum,
	"history":   maps.PlaceTypeMuseum,
	"food":      maps.PlaceTypeRestaurant,
	"nature":    maps.PlaceTypePark,
	"shopping":  maps.PlaceTypeShoppingMall,
	"nightlife": maps.PlaceTypeBar,
}

// PlacesService handles interactions with the Google Places API.
// cache may be nil, in which case detail lookups always hit the API.
type PlacesService struct {
	client *maps.Client
	cache  *redis.Client
}

// NewPlacesService creates a PlacesService with the given API key.
func NewPlacesService(apiKey string, cache *redis.Client) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, cache: cache}, nil
}

// GetNearbyPlaces searches for places around location matching the selected
// themes. Results from all theme searches are merged, de-duplicated by place
// ID, and returned in discovery order.
func (s *PlacesService) GetNearbyPlaces(ctx context.Context, location types.LatLng, themes []string) ([]NearbyPlace, error) {
	seen := make(map[string]bool)
	var results []NearbyPlace

	searched := map[maps.PlaceType]bool{}
	for _, theme := range themes {
		placeType, ok := themeTypes[theme]
		if !ok {
			placeType = maps.PlaceTypeTouristAttraction
		}
		if searched[placeType] {
			continue
		}
		searched[placeType] = true

		r := &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: location.Lat, Lng: location.Lng},
			Radius:   5000,
			Type:     placeType,
		}
		resp, err := s.client.NearbySearch(ctx, r)
		if err != nil {
			// A failed theme degrades the result set, it does not abort the trip.
			continue
		}

		for _, result := range resp.Results {
			if seen[result.PlaceID] {
				continue
			}
			seen[result.PlaceID] = true
			results = append(results, NearbyPlace{
				PlaceID:          result.PlaceID,
				Name:             result.Name,
				Location:         types.LatLng{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
				Types:            result.Types,
				Rating:           float64(result.Rating),
				UserRatingsTotal: result.UserRatingsTotal,
			})
		}
	}

	return results, nil
}

// GetPlaceDetails fetches the detail record for a place. It returns
// (nil, nil) when the provider has nothing useful for the ID so callers can
// drop the place without treating it as a failure.
func (s *PlacesService) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if placeID == "" {
		return nil, nil
	}

	cacheKey := "place:details:" + placeID
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached PlaceDetails
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		return nil, fmt.Errorf("place details api error: %w", err)
	}
	if resp.FormattedAddress == "" {
		return nil, nil
	}

	details := &PlaceDetails{
		Address:    resp.FormattedAddress,
		PriceLevel: resp.PriceLevel,
	}
	if resp.OpeningHours != nil {
		details.OpeningHours = resp.OpeningHours.WeekdayText
	}
	for _, review := range resp.Reviews {
		if review.Text == "" {
			continue
		}
		details.Reviews = append(details.Reviews, review.Text)
		if len(details.Reviews) >= 3 {
			break
		}
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(details); err == nil {
			s.cache.Set(ctx, cacheKey, encoded, detailsCacheTTL)
		}
	}

	return details, nil
}

// SearchHotels finds lodging around location within radius meters.
func (s *PlacesService) SearchHotels(ctx context.Context, location types.LatLng, radius int) ([]Hotel, error) {
	if radius <= 0 {
		radius = 5000
	}

	r := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: location.Lat, Lng: location.Lng},
		Radius:   uint(radius),
		Type:     maps.PlaceTypeLodging,
	}
	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("hotel search api error: %w", err)
	}

	var hotels []Hotel
	for _, result := range resp.Results {
		hotel := Hotel{
			Name:       result.Name,
			Location:   types.LatLng{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
			Address:    result.Vicinity,
			Rating:     float64(result.Rating),
			PriceLevel: result.PriceLevel,
		}
		for _, photo := range result.Photos {
			hotel.Photos = append(hotel.Photos, photo.PhotoReference)
		}
		hotels = append(hotels, hotel)
	}

	return hotels, nil
}

// GetPlaceSuggestions returns autocomplete predictions for a partial query.
func (s *PlacesService) GetPlaceSuggestions(ctx context.Context, query string) ([]Suggestion, error) {
	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: query})
	if err != nil {
		return nil, fmt.Errorf("autocomplete api error: %w", err)
	}

	var suggestions []Suggestion
	for _, prediction := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{
			Description: prediction.Description,
			PlaceID:     prediction.PlaceID,
		})
	}
	return suggestions, nil
}
