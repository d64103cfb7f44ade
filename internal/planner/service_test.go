package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"wander/internal/config"
	"wander/internal/maps"
	"wander/internal/types"
)

// fakePlaces is a canned mapping-provider double.
type fakePlaces struct {
	hotels  []maps.Hotel
	places  []maps.NearbyPlace
	details map[string]*maps.PlaceDetails

	hotelsErr error
	placesErr error
}

func (f *fakePlaces) GetNearbyPlaces(_ context.Context, _ types.LatLng, _ []string) ([]maps.NearbyPlace, error) {
	return f.places, f.placesErr
}

func (f *fakePlaces) GetPlaceDetails(_ context.Context, placeID string) (*maps.PlaceDetails, error) {
	return f.details[placeID], nil
}

func (f *fakePlaces) SearchHotels(_ context.Context, _ types.LatLng, _ int) ([]maps.Hotel, error) {
	return f.hotels, f.hotelsErr
}

// fakeGenerator returns scripted responses, one per call.
type fakeGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *fakeGenerator) GeneratePlan(_ context.Context, prompt string) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	var err error
	if i < len(g.errs) {
		err = g.errs[i]
	}
	return g.responses[i], err
}

func dayJSON(count int) string {
	var days []string
	for i := 0; i < count; i++ {
		days = append(days, fmt.Sprintf(
			`{"day": %d, "date": "2026-04-%02d", "activities": [{"type": "attraction", "time": "10:00", "duration": 120, "place": "Old Museum"}]}`,
			i+1, 10+i))
	}
	return `{"daily_plans": [` + strings.Join(days, ",") + `]}`
}

func defaultFakePlaces() *fakePlaces {
	return &fakePlaces{
		hotels: []maps.Hotel{{Name: "Stay Inn", Rating: 4.2, PriceLevel: 2}},
		places: []maps.NearbyPlace{
			{PlaceID: "p1", Name: "Old Museum", Location: types.LatLng{Lat: 35.01, Lng: 135.76}, Types: []string{"museum"}},
			{PlaceID: "p2", Name: "Ghost Spot"},
		},
		details: map[string]*maps.PlaceDetails{
			"p1": {Address: "1 Museum Way"},
			// p2 intentionally unresolvable.
		},
	}
}

func newTestService(places PlaceProvider, gen *fakeGenerator) *Service {
	return NewService(places, gen, nil, config.PlannerConfig{MaxAttempts: 2, PromptPlaces: 20})
}

func twoDayRequest() TripRequest {
	req := testTripRequest()
	req.StartDate = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	req.EndDate = time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
	return req
}

func TestPlanTrip_Success(t *testing.T) {
	gen := &fakeGenerator{responses: []string{dayJSON(2)}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("unexpected failure: %s", result.Message)
	}
	if len(gen.prompts) != 1 {
		t.Errorf("generator called %d times, want 1", len(gen.prompts))
	}
	if len(result.DailyPlans) != 2 {
		t.Fatalf("day count = %d, want 2", len(result.DailyPlans))
	}
	for i, day := range result.DailyPlans {
		if day.Day != i+1 {
			t.Errorf("day index = %d, want %d", day.Day, i+1)
		}
	}

	// Enrichment attached the known coordinate.
	act := result.DailyPlans[0].Activities[0]
	if act.Location == nil || act.Location.Lat != 35.01 {
		t.Errorf("activity location = %+v, want enriched coordinate", act.Location)
	}

	// The dropped place must not leak into the prompt.
	if strings.Contains(gen.prompts[0], "Ghost Spot") {
		t.Error("place without details rendered into the prompt")
	}
	if !strings.Contains(gen.prompts[0], "Old Museum") {
		t.Error("resolved place missing from the prompt")
	}
}

func TestPlanTrip_RetriesOnCardinalityMismatch(t *testing.T) {
	gen := &fakeGenerator{responses: []string{dayJSON(1), dayJSON(2)}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("second attempt should have succeeded: %s", result.Message)
	}
	if len(gen.prompts) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[1], "return exactly 2 day entries") {
		t.Error("retry prompt missing cardinality feedback")
	}
}

func TestPlanTrip_ExhaustedReturnsErrorShape(t *testing.T) {
	gen := &fakeGenerator{responses: []string{dayJSON(1), dayJSON(1)}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected the error shape after retries exhaust")
	}
	if result.RawResponse != dayJSON(1) {
		t.Error("error shape must preserve the last raw response")
	}
	if len(result.DailyPlans) != 0 {
		t.Error("no partial plan may accompany an error")
	}
	if len(gen.prompts) != 2 {
		t.Errorf("generator called %d times, want 2", len(gen.prompts))
	}
}

func TestPlanTrip_UnparseableKeepsRaw(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"no plan today", "still no plan"}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected failure for unparseable output")
	}
	if result.RawResponse != "still no plan" {
		t.Errorf("RawResponse = %q, want the last raw output", result.RawResponse)
	}
	if !strings.Contains(gen.prompts[1], "not parseable JSON") {
		t.Error("retry prompt missing format feedback")
	}
}

func TestPlanTrip_GeneratorFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{responses: []string{"", ""}, errs: []error{boom, boom}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected failure when generation errors")
	}
	if !strings.Contains(result.Message, "quota exceeded") {
		t.Errorf("Message = %q, want provider diagnostics", result.Message)
	}
}

func TestPlanTrip_InvalidDates(t *testing.T) {
	req := twoDayRequest()
	req.EndDate = req.StartDate

	svc := newTestService(defaultFakePlaces(), &fakeGenerator{responses: []string{""}})
	if _, err := svc.PlanTrip(context.Background(), req); !errors.Is(err, ErrInvalidDates) {
		t.Errorf("error = %v, want ErrInvalidDates", err)
	}
}

func TestPlanTrip_ProviderFailuresDegrade(t *testing.T) {
	places := defaultFakePlaces()
	places.hotelsErr = errors.New("hotel backend down")
	places.placesErr = errors.New("places backend down")

	gen := &fakeGenerator{responses: []string{dayJSON(2)}}
	svc := newTestService(places, gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("provider failures must degrade, not abort: %s", result.Message)
	}
	if !strings.Contains(gen.prompts[0], "none selected") {
		t.Error("prompt should state no accommodation when hotel search fails")
	}
}

func TestPlanTrip_FillsMissingDates(t *testing.T) {
	raw := `{"daily_plans": [
		{"day": 1, "activities": []},
		{"day": 2, "activities": []}
	]}`
	gen := &fakeGenerator{responses: []string{raw}}
	svc := newTestService(defaultFakePlaces(), gen)

	result, err := svc.PlanTrip(context.Background(), twoDayRequest())
	if err != nil {
		t.Fatalf("PlanTrip() error = %v", err)
	}
	if result.DailyPlans[0].Date != "2026-04-10" || result.DailyPlans[1].Date != "2026-04-11" {
		t.Errorf("dates = %q, %q", result.DailyPlans[0].Date, result.DailyPlans[1].Date)
	}
}
