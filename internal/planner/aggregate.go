package planner

import (
	"wander/internal/maps"
	"wander/internal/types"
)

// Visit duration defaults in minutes, assigned by place category.
const (
	durationDefault    = 120
	durationMuseum     = 180
	durationRestaurant = 90
)

// Default recommended visit windows handed to the prompt composer.
var (
	defaultVisitWindow  = TimeWindow{Start: "10:00", End: "16:00"}
	defaultLunchWindow  = TimeWindow{Start: "12:00", End: "14:00"}
	defaultDinnerWindow = TimeWindow{Start: "18:00", End: "20:00"}
)

// Standard accommodation check-in/out times.
const (
	hotelCheckIn  = "15:00"
	hotelCheckOut = "11:00"
)

// SourcedPlace pairs a raw search result with its detail lookup. Details is
// nil when the provider could not resolve the place; the aggregator drops
// such places silently.
type SourcedPlace struct {
	Place   maps.NearbyPlace
	Details *maps.PlaceDetails
}

// hotelScore weighs rating against price. Higher is better.
func hotelScore(h maps.Hotel) float64 {
	return h.Rating*0.7 + float64(5-h.PriceLevel)*0.3
}

// SelectHotel picks the hotel maximizing the weighted score. Ties keep the
// first maximal element in input order. Returns nil for an empty slice.
func SelectHotel(hotels []maps.Hotel) *HotelRecord {
	if len(hotels) == 0 {
		return nil
	}

	best := hotels[0]
	bestScore := hotelScore(best)
	for _, h := range hotels[1:] {
		if score := hotelScore(h); score > bestScore {
			best, bestScore = h, score
		}
	}

	return &HotelRecord{
		Name:       best.Name,
		Location:   best.Location,
		Address:    best.Address,
		Rating:     best.Rating,
		PriceLevel: best.PriceLevel,
		CheckIn:    hotelCheckIn,
		CheckOut:   hotelCheckOut,
		Photos:     best.Photos,
		Reviews:    best.Reviews,
	}
}

func hasType(placeTypes []string, want string) bool {
	for _, t := range placeTypes {
		if t == want {
			return true
		}
	}
	return false
}

// categorize derives the category and the estimated visit duration from the
// provider place types. Category-specific values override the default.
func categorize(placeTypes []string) (category string, duration int) {
	switch {
	case hasType(placeTypes, "museum") || hasType(placeTypes, "art_gallery"):
		return "museum", durationMuseum
	case hasType(placeTypes, "restaurant"):
		return "restaurant", durationRestaurant
	default:
		return "attraction", durationDefault
	}
}

// Aggregate merges the trip request with already-fetched provider results
// into a single TravelDataDocument. It performs no network calls itself.
//
// Places without resolvable details are dropped without error. The name
// lookup table is built as places are accepted; later duplicate names
// overwrite earlier entries.
func Aggregate(req TripRequest, places []SourcedPlace, hotels []maps.Hotel) *TravelDataDocument {
	doc := &TravelDataDocument{
		Trip:      req,
		Locations: make(map[string]types.LatLng),
	}

	doc.Accommodation = SelectHotel(hotels)
	if doc.Accommodation != nil {
		doc.Locations[doc.Accommodation.Name] = doc.Accommodation.Location
	}

	for _, sp := range places {
		if sp.Details == nil {
			continue
		}

		category, duration := categorize(sp.Place.Types)
		record := PlaceRecord{
			ID:                sp.Place.PlaceID,
			Name:              sp.Place.Name,
			Category:          category,
			Location:          sp.Place.Location,
			Address:           sp.Details.Address,
			Rating:            sp.Place.Rating,
			ReviewCount:       sp.Place.UserRatingsTotal,
			PriceLevel:        sp.Details.PriceLevel,
			EstimatedDuration: duration,
			OpeningHours:      sp.Details.OpeningHours,
		}

		if category == "restaurant" {
			lunch, dinner := defaultLunchWindow, defaultDinnerWindow
			record.LunchWindow = &lunch
			record.DinnerWindow = &dinner
		} else {
			visit := defaultVisitWindow
			record.RecommendedTime = &visit
		}

		doc.Places = append(doc.Places, record)
		doc.Locations[record.Name] = record.Location
	}

	return doc
}
