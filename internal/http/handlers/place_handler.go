// README: Place handlers (destination resolve, photo lookup).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/maps"
	"tripplanner/internal/types"
)

// Places is the place-lookup surface the handler needs.
type Places interface {
	Resolve(ctx context.Context, query string) (types.Place, error)
	PhotoReference(ctx context.Context, query string) (string, error)
	PhotoURL(ref string) string
}

type PlaceHandler struct {
	places Places
}

func NewPlaceHandler(places Places) *PlaceHandler {
	return &PlaceHandler{places: places}
}

// Resolve handles GET /api/places/resolve?q=...
func (h *PlaceHandler) Resolve(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}
	place, err := h.places.Resolve(c.Request.Context(), query)
	if errors.Is(err, maps.ErrNoMatch) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusBadGateway, "place lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, place)
}

// Photo handles GET /api/places/photo?q=... and returns a photo URL for the
// queried place.
func (h *PlaceHandler) Photo(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}
	ref, err := h.places.PhotoReference(c.Request.Context(), query)
	if errors.Is(err, maps.ErrNoMatch) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusBadGateway, "photo lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"url": h.places.PhotoURL(ref)})
}
