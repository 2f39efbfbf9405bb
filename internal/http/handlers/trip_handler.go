// README: Trip handlers (generate-and-save, stream, fetch, list).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/modules/trip"
	"tripplanner/internal/types"
)

// generateTimeout bounds a single generate-and-save round trip; itinerary
// generation regularly takes tens of seconds.
const generateTimeout = 90 * time.Second

// Planner is the trip pipeline surface the handler needs.
type Planner interface {
	GenerateAndSave(ctx context.Context, ownerEmail string, sel trip.TripSelection) (trip.TripRecord, error)
	GenerateAndStream(ctx context.Context, ownerEmail string, sel trip.TripSelection, sink func(chunk string)) (trip.TripRecord, error)
	Defer(key string, sel trip.TripSelection)
	Get(ctx context.Context, id types.ID) (trip.TripRecord, error)
	ListByOwner(ctx context.Context, email string) ([]trip.TripRecord, error)
}

// Resolver turns a free-text destination query into a concrete place.
type Resolver interface {
	Resolve(ctx context.Context, query string) (types.Place, error)
}

type TripHandler struct {
	planner  Planner
	resolver Resolver
}

func NewTripHandler(planner Planner, resolver Resolver) *TripHandler {
	return &TripHandler{planner: planner, resolver: resolver}
}

type createTripReq struct {
	Destination      *types.Place `json:"destination"`
	DestinationQuery string       `json:"destination_query"`
	NumberOfDays     int          `json:"no_of_days"`
	Budget           string       `json:"budget"`
	Traveler         string       `json:"traveler"`
}

// selection builds the TripSelection from the request, resolving a free-text
// destination when no concrete place was sent. Unknown budget or traveler
// strings are kept as-is so validation reports them alongside the rest.
func (h *TripHandler) selection(ctx context.Context, req createTripReq) (trip.TripSelection, error) {
	sel := trip.TripSelection{
		NumberOfDays: req.NumberOfDays,
		Budget:       trip.BudgetTier(req.Budget),
		Traveler:     trip.TravelerParty(req.Traveler),
	}
	if b, err := trip.ParseBudgetTier(req.Budget); err == nil {
		sel.Budget = b
	}
	if p, err := trip.ParseTravelerParty(req.Traveler); err == nil {
		sel.Traveler = p
	}
	switch {
	case req.Destination != nil:
		sel.Destination = *req.Destination
	case req.DestinationQuery != "":
		place, err := h.resolver.Resolve(ctx, req.DestinationQuery)
		if err != nil {
			return trip.TripSelection{}, err
		}
		sel.Destination = place
	}
	return sel, nil
}

// Create handles POST /api/trips.
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	sel, err := h.selection(ctx, req)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, signedIn := middleware.Profile(c)
	if !signedIn {
		// Park the request behind the sign-in gate; it resumes on sign-in.
		deferred := false
		if key, ok := middleware.SessionKey(c); ok {
			h.planner.Defer(key, sel)
			deferred = true
		}
		writeJSON(c, http.StatusUnauthorized, gin.H{"deferred": deferred, "error": "sign in required"})
		return
	}

	rec, err := h.planner.GenerateAndSave(ctx, profile.Email, sel)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, rec)
}

// Stream handles POST /api/trips/stream; raw model text increments are pushed
// as SSE events, the saved record follows as the final event.
func (h *TripHandler) Stream(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	profile, signedIn := middleware.Profile(c)
	if !signedIn {
		writeError(c, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	sel, err := h.selection(ctx, req)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	rec, err := h.planner.GenerateAndStream(ctx, profile.Email, sel, func(chunk string) {
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	})
	if err != nil {
		c.SSEvent("error", err.Error())
		c.Writer.Flush()
		return
	}
	c.SSEvent("trip", rec)
	c.Writer.Flush()
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	profile, signedIn := middleware.Profile(c)
	if !signedIn {
		writeError(c, http.StatusUnauthorized, "sign in required")
		return
	}

	rec, err := h.planner.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}
	if rec.OwnerEmail != profile.Email {
		writeError(c, http.StatusNotFound, trip.ErrNotFound.Error())
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	profile, signedIn := middleware.Profile(c)
	if !signedIn {
		writeError(c, http.StatusUnauthorized, "sign in required")
		return
	}

	trips, err := h.planner.ListByOwner(c.Request.Context(), profile.Email)
	if err != nil {
		writeTripError(c, err)
		return
	}
	if trips == nil {
		trips = []trip.TripRecord{}
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}
