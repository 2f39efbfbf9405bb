// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/quota"
	"tripplanner/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTripError(c *gin.Context, err error) {
	var vErr *trip.ValidationError
	var gErr *ai.GenerationError
	switch {
	case errors.As(err, &vErr):
		writeError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrBusy), errors.Is(err, trip.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, quota.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &gErr):
		writeError(c, http.StatusBadGateway, gErr.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
