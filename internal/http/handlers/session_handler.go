// README: Session handlers (sign-in with gated-resume, sign-out, whoami).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

// Sessions is the session service surface the handler needs.
type Sessions interface {
	SignIn(ctx context.Context, key, accessToken string) (session.UserProfile, error)
	SignOut(ctx context.Context, key string) error
	Current(ctx context.Context, key string) (session.UserProfile, error)
}

// PendingResumer runs the trip request parked behind the sign-in gate.
type PendingResumer interface {
	ResumePending(ctx context.Context, key, ownerEmail string) (*trip.TripRecord, error)
}

type SessionHandler struct {
	sessions Sessions
	resumer  PendingResumer
}

func NewSessionHandler(sessions Sessions, resumer PendingResumer) *SessionHandler {
	return &SessionHandler{sessions: sessions, resumer: resumer}
}

type signInReq struct {
	AccessToken string `json:"access_token"`
}

// SignIn handles POST /api/session. On success any trip request parked for
// this session key runs once; its outcome rides along in the response without
// failing the sign-in itself.
func (h *SessionHandler) SignIn(c *gin.Context) {
	key, ok := middleware.SessionKey(c)
	if !ok {
		writeError(c, http.StatusBadRequest, "missing session key")
		return
	}

	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil || req.AccessToken == "" {
		writeError(c, http.StatusBadRequest, "missing access_token")
		return
	}

	profile, err := h.sessions.SignIn(c.Request.Context(), key, req.AccessToken)
	if err != nil {
		writeError(c, http.StatusUnauthorized, err.Error())
		return
	}

	resp := gin.H{"profile": profile}
	rec, err := h.resumer.ResumePending(c.Request.Context(), key, profile.Email)
	if err != nil {
		resp["resume_error"] = err.Error()
	} else if rec != nil {
		resp["resumed_trip"] = rec
	}

	writeJSON(c, http.StatusOK, resp)
}

// SignOut handles DELETE /api/session.
func (h *SessionHandler) SignOut(c *gin.Context) {
	key, ok := middleware.SessionKey(c)
	if !ok {
		writeError(c, http.StatusBadRequest, "missing session key")
		return
	}
	if err := h.sessions.SignOut(c.Request.Context(), key); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/session.
func (h *SessionHandler) Me(c *gin.Context) {
	profile, ok := middleware.Profile(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"profile": profile})
}
