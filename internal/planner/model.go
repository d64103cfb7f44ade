package planner

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"wander/internal/types"
)

// Travelers describes who is taking the trip.
type Travelers struct {
	Count int    `json:"count"`
	Type  string `json:"type"`
}

// Destination is the trip's anchor point for all provider searches.
type Destination struct {
	Name     string       `json:"name"`
	Location types.LatLng `json:"location"`
}

// TripRequest is the immutable input to the planning pipeline.
type TripRequest struct {
	Destination Destination
	StartDate   time.Time
	EndDate     time.Time
	Budget      int
	Themes      []string
	Travelers   Travelers
}

// Days returns the trip duration in whole days, exclusive of the end date.
func (r TripRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// TimeWindow is a recommended visit window in "HH:MM" wall-clock strings.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PlaceRecord is a detail-resolved place ready for prompt rendering.
type PlaceRecord struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	Location          types.LatLng `json:"location"`
	Address           string       `json:"address"`
	Rating            float64      `json:"rating"`
	ReviewCount       int          `json:"reviews_count"`
	PriceLevel        int          `json:"price_level"`
	EstimatedDuration int          `json:"estimated_duration"`
	OpeningHours      []string     `json:"opening_hours,omitempty"`

	// RecommendedTime is the visit window for non-restaurant places.
	RecommendedTime *TimeWindow `json:"recommended_time,omitempty"`
	// LunchWindow and DinnerWindow are set for restaurants instead.
	LunchWindow  *TimeWindow `json:"lunch_window,omitempty"`
	DinnerWindow *TimeWindow `json:"dinner_window,omitempty"`
}

// HotelRecord is the selected accommodation for the whole trip.
type HotelRecord struct {
	Name       string       `json:"name"`
	Location   types.LatLng `json:"location"`
	Address    string       `json:"address"`
	Rating     float64      `json:"rating"`
	PriceLevel int          `json:"price_level"`
	CheckIn    string       `json:"check_in"`
	CheckOut   string       `json:"check_out"`
	Photos     []string     `json:"photos,omitempty"`
	Reviews    []string     `json:"reviews,omitempty"`
}

// TravelDataDocument is the aggregate handed to the prompt composer.
// Locations indexes every accepted place (and the hotel) by exact name for
// post-generation enrichment; duplicate names are last-write-wins.
type TravelDataDocument struct {
	Trip          TripRequest
	Accommodation *HotelRecord
	Places        []PlaceRecord
	Locations     map[string]types.LatLng
}

// Minutes is an int that also accepts quoted numbers during unmarshalling.
// The generator is told to emit durations as numbers but frequently quotes
// them anyway.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		// Tolerate decorated values like "90분" or "90 min" by reading the
		// leading digits.
		i := 0
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
		if i == 0 {
			return err
		}
		n, _ = strconv.Atoi(string(data[:i]))
	}
	*m = Minutes(n)
	return nil
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

// Activity is one scheduled stop within a day. Location is attached by the
// enrichment stage and stays nil when the place name has no lookup match.
type Activity struct {
	Type     string        `json:"type,omitempty"`
	Time     string        `json:"time,omitempty"`
	EndTime  string        `json:"end_time,omitempty"`
	Duration Minutes       `json:"duration,omitempty"`
	Place    string        `json:"place"`
	Notes    string        `json:"notes,omitempty"`
	Location *types.LatLng `json:"location,omitempty"`
}

// MealSlot names where and when one meal happens.
type MealSlot struct {
	Location string `json:"location"`
	Time     string `json:"time"`
}

// Meals holds the optional per-day meal slots.
type Meals struct {
	Breakfast *MealSlot `json:"breakfast,omitempty"`
	Lunch     *MealSlot `json:"lunch,omitempty"`
	Dinner    *MealSlot `json:"dinner,omitempty"`
}

// DailyPlan is one generated day. Day indexes are 1-based and contiguous in a
// valid plan.
type DailyPlan struct {
	Day           int        `json:"day"`
	Date          string     `json:"date"`
	Activities    []Activity `json:"activities"`
	Meals         *Meals     `json:"meals,omitempty"`
	TotalDistance float64    `json:"total_distance,omitempty"`
}

// PlanSummary is the generated trip overview.
type PlanSummary struct {
	MainAttractions []string `json:"main_attractions,omitempty"`
	RouteOverview   string   `json:"route_overview,omitempty"`
}

// PlanResult is the terminal artifact of the pipeline: either a plan
// (DailyPlans populated) or an error record preserving the raw model output.
// Never both.
type PlanResult struct {
	Summary    *PlanSummary `json:"summary,omitempty"`
	DailyPlans []DailyPlan  `json:"daily_plans,omitempty"`

	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// Failed reports whether the result is the error shape.
func (r *PlanResult) Failed() bool {
	return r.Error != ""
}
