// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wandersmart/internal/itinerary"
	"wandersmart/internal/modules/quota"
	"wandersmart/internal/service"
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

// writePlanError turns planner failures into user-facing messages.
func writePlanError(c *gin.Context, err error) {
	var decodeErr *itinerary.DecodeError
	var extractErr *itinerary.ExtractionError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quota.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &decodeErr):
		writeError(c, http.StatusBadGateway, "the travel agents returned an unreadable response, please try again")
	case errors.As(err, &extractErr):
		writeError(c, http.StatusInternalServerError, "internal error")
	default:
		writeError(c, http.StatusBadGateway, "the travel agents are unavailable, please try again later")
	}
}
