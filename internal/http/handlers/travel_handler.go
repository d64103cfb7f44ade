// README: Travel-plan handler (full generation pipeline).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wander/internal/planner"
	"wander/internal/types"
)

// generationTimeout bounds one whole planning request, including the bounded
// generate→normalize retries.
const generationTimeout = 120 * time.Second

// TripPlanner is what the handler needs from the planning pipeline.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req planner.TripRequest) (*planner.PlanResult, error)
}

type TravelHandler struct {
	planner TripPlanner
}

func NewTravelHandler(p TripPlanner) *TravelHandler {
	return &TravelHandler{planner: p}
}

type destinationReq struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type travelersReq struct {
	Count int    `json:"count"`
	Type  string `json:"type"`
}

type travelPlanReq struct {
	Destination destinationReq `json:"destination"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Budget      int            `json:"budget"`
	Themes      []string       `json:"themes"`
	Travelers   travelersReq   `json:"travelers"`
}

func (r travelPlanReq) toTripRequest() (planner.TripRequest, error) {
	if strings.TrimSpace(r.Destination.Name) == "" {
		return planner.TripRequest{}, errors.New("missing destination name")
	}

	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return planner.TripRequest{}, errors.New("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return planner.TripRequest{}, errors.New("invalid end_date, expected YYYY-MM-DD")
	}
	if !end.After(start) {
		return planner.TripRequest{}, planner.ErrInvalidDates
	}

	travelers := planner.Travelers{Count: r.Travelers.Count, Type: r.Travelers.Type}
	if travelers.Count <= 0 {
		travelers.Count = 1
	}
	if travelers.Type == "" {
		travelers.Type = "solo"
	}

	return planner.TripRequest{
		Destination: planner.Destination{
			Name:     r.Destination.Name,
			Location: types.LatLng{Lat: r.Destination.Lat, Lng: r.Destination.Lng},
		},
		StartDate: start,
		EndDate:   end,
		Budget:    r.Budget,
		Themes:    r.Themes,
		Travelers: travelers,
	}, nil
}

// Create handles POST /api/travel-plan.
func (h *TravelHandler) Create(c *gin.Context) {
	var req travelPlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	tripReq, err := req.toTripRequest()
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	result, err := h.planner.PlanTrip(ctx, tripReq)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrInvalidDates):
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	// A plan or an error record, never a mix. The error record still goes out
	// as JSON so callers can inspect raw_response.
	if result.Failed() {
		writeJSON(c, http.StatusBadGateway, result)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
