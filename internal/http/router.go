// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/maps"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

type RouterDeps struct {
	Trips    *trip.Service
	Sessions *session.Service
	Places   *maps.PlacesService
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.Session(deps.Sessions))

	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Trips)
	r.POST("/api/session", sessionHandler.SignIn)
	r.DELETE("/api/session", sessionHandler.SignOut)
	r.GET("/api/session", sessionHandler.Me)

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.Places)
	r.POST("/api/trips", tripHandler.Create)
	r.POST("/api/trips/stream", tripHandler.Stream)
	r.GET("/api/trips/:id", tripHandler.Get)
	r.GET("/api/trips", tripHandler.List)

	placeHandler := handlers.NewPlaceHandler(deps.Places)
	r.GET("/api/places/resolve", placeHandler.Resolve)
	r.GET("/api/places/photo", placeHandler.Photo)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
