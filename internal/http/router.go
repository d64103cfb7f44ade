// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wander/internal/http/handlers"
	"wander/internal/http/middleware"
)

func NewRouter(travelPlanner handlers.TripPlanner, places handlers.PlaceFinder) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	travelHandler := handlers.NewTravelHandler(travelPlanner)
	r.POST("/api/travel-plan", travelHandler.Create)

	placeHandler := handlers.NewPlaceHandler(places)
	r.GET("/api/nearby-places", placeHandler.Nearby)
	r.GET("/api/hotels", placeHandler.Hotels)
	r.GET("/api/place-suggestions", placeHandler.Suggestions)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
