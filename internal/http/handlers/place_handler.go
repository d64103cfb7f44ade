// README: Place/hotel lookup handlers (thin pass-throughs to the provider adapter).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wander/internal/maps"
	"wander/internal/types"
)

// PlaceFinder is what the handlers need from the mapping provider adapter.
type PlaceFinder interface {
	GetNearbyPlaces(ctx context.Context, location types.LatLng, themes []string) ([]maps.NearbyPlace, error)
	SearchHotels(ctx context.Context, location types.LatLng, radius int) ([]maps.Hotel, error)
	GetPlaceSuggestions(ctx context.Context, query string) ([]maps.Suggestion, error)
}

type PlaceHandler struct {
	places PlaceFinder
}

func NewPlaceHandler(places PlaceFinder) *PlaceHandler {
	return &PlaceHandler{places: places}
}

func parseLatLng(c *gin.Context) (types.LatLng, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid lat")
		return types.LatLng{}, false
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid lng")
		return types.LatLng{}, false
	}
	return types.LatLng{Lat: lat, Lng: lng}, true
}

// Nearby handles GET /api/nearby-places?lat=..&lng=..&themes=a&themes=b.
func (h *PlaceHandler) Nearby(c *gin.Context) {
	location, ok := parseLatLng(c)
	if !ok {
		return
	}
	themes := c.QueryArray("themes")
	if len(themes) == 0 {
		writeError(c, http.StatusBadRequest, "at least one theme is required")
		return
	}

	places, err := h.places.GetNearbyPlaces(c.Request.Context(), location, themes)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place search failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

// Hotels handles GET /api/hotels?lat=..&lng=..&radius=5000.
func (h *PlaceHandler) Hotels(c *gin.Context) {
	location, ok := parseLatLng(c)
	if !ok {
		return
	}
	radius := 5000
	if v := c.Query("radius"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, "invalid radius")
			return
		}
		radius = n
	}

	hotels, err := h.places.SearchHotels(c.Request.Context(), location, radius)
	if err != nil {
		writeError(c, http.StatusBadGateway, "hotel search failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"hotels": hotels})
}

// Suggestions handles GET /api/place-suggestions?query=....
func (h *PlaceHandler) Suggestions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		writeError(c, http.StatusBadRequest, "query is required")
		return
	}

	suggestions, err := h.places.GetPlaceSuggestions(c.Request.Context(), query)
	if err != nil {
		writeError(c, http.StatusBadGateway, "suggestion lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"suggestions": suggestions})
}
