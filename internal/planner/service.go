package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"wander/internal/ai"
	"wander/internal/audit"
	"wander/internal/config"
	"wander/internal/maps"
	"wander/internal/types"
)

// ErrInvalidDates rejects requests whose date range spans no whole day.
var ErrInvalidDates = errors.New("end date must be after start date")

// hotelSearchRadius is the lodging search radius in meters.
const hotelSearchRadius = 5000

// PlaceProvider is the mapping-provider boundary the pipeline consumes.
// *maps.PlacesService satisfies it; tests substitute fakes.
type PlaceProvider interface {
	GetNearbyPlaces(ctx context.Context, location types.LatLng, themes []string) ([]maps.NearbyPlace, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
	SearchHotels(ctx context.Context, location types.LatLng, radius int) ([]maps.Hotel, error)
}

// Service runs the full itinerary pipeline: provider collection, aggregation,
// prompt composition, generation, normalization, and enrichment.
type Service struct {
	places    PlaceProvider
	generator ai.TextGenerator
	audit     *audit.Service
	cfg       config.PlannerConfig
}

// NewService wires the pipeline. auditSvc may be nil.
func NewService(places PlaceProvider, generator ai.TextGenerator, auditSvc *audit.Service, cfg config.PlannerConfig) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.PromptPlaces <= 0 {
		cfg.PromptPlaces = defaultPromptPlaces
	}
	return &Service{
		places:    places,
		generator: generator,
		audit:     auditSvc,
		cfg:       cfg,
	}
}

// collectTravelData fetches hotels and themed places concurrently, resolves
// place details, and aggregates everything into one document. Provider
// failures degrade the document instead of aborting the request.
func (s *Service) collectTravelData(ctx context.Context, req TripRequest) *TravelDataDocument {
	var (
		hotels    []maps.Hotel
		rawPlaces []maps.NearbyPlace
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		h, err := s.places.SearchHotels(ctx, req.Destination.Location, hotelSearchRadius)
		if err != nil {
			log.Printf("hotel search: %v", err)
			return
		}
		hotels = h
	}()
	go func() {
		defer wg.Done()
		p, err := s.places.GetNearbyPlaces(ctx, req.Destination.Location, req.Themes)
		if err != nil {
			log.Printf("nearby places: %v", err)
			return
		}
		rawPlaces = p
	}()
	wg.Wait()

	sourced := make([]SourcedPlace, 0, len(rawPlaces))
	for _, p := range rawPlaces {
		details, err := s.places.GetPlaceDetails(ctx, p.PlaceID)
		if err != nil {
			// Recoverable-data policy: the place is dropped, not the trip.
			log.Printf("place details for %q: %v", p.Name, err)
			details = nil
		}
		sourced = append(sourced, SourcedPlace{Place: p, Details: details})
	}

	return Aggregate(req, sourced, hotels)
}

// finalizeSchedule pins the day numbering to the contiguous sequence 1..D and
// fills missing dates from the trip start. Both values derive from the
// request, so rewriting them invents no content.
func finalizeSchedule(result *PlanResult, req TripRequest) {
	for i := range result.DailyPlans {
		result.DailyPlans[i].Day = i + 1
		if result.DailyPlans[i].Date == "" {
			result.DailyPlans[i].Date = req.StartDate.AddDate(0, 0, i).Format("2006-01-02")
		}
	}
}

// PlanTrip runs the whole pipeline for one request. The returned PlanResult
// is either a valid D-day plan or the error shape carrying the raw model
// output; generator unreliability never escapes as a panic or a partial plan.
func (s *Service) PlanTrip(ctx context.Context, req TripRequest) (*PlanResult, error) {
	days := req.Days()
	if days <= 0 {
		return nil, ErrInvalidDates
	}

	doc := s.collectTravelData(ctx, req)

	var (
		feedback   string
		lastRaw    string
		lastReason string
	)

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		prompt := ComposeRetryPrompt(doc, s.cfg.PromptPlaces, feedback)

		raw, err := s.generator.GeneratePlan(ctx, prompt)
		if err != nil {
			log.Printf("plan generation attempt %d: %v", attempt, err)
			lastReason = err.Error()
			feedback = ""
			continue
		}
		lastRaw = raw

		result := Normalize(raw)
		if result.Failed() {
			lastReason = result.Message
			feedback = "the response was not parseable JSON; return only the JSON document, nothing else"
			continue
		}

		if !CheckCardinality(result, days) {
			lastReason = fmt.Sprintf("plan has %d day entries, expected %d", len(result.DailyPlans), days)
			feedback = fmt.Sprintf("the plan contained %d day entries; return exactly %d day entries", len(result.DailyPlans), days)
			continue
		}

		finalizeSchedule(result, req)
		Enrich(result, doc)
		s.audit.RecordGeneration(ctx, req.Destination.Name, days, attempt, true)
		return result, nil
	}

	s.audit.RecordGeneration(ctx, req.Destination.Name, days, s.cfg.MaxAttempts, false)
	return &PlanResult{
		Error:       "failed to generate a valid travel plan",
		Message:     lastReason,
		RawResponse: lastRaw,
	}, nil
}
