// README: Itinerary handlers (plan, raw agent output, preview of saved output).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wandersmart/internal/itinerary"
	"wandersmart/internal/service"
)

// Planner is the subset of service.TripPlanner the handlers call.
type Planner interface {
	PlanItinerary(ctx context.Context, req service.TripRequest) (itinerary.Itinerary, error)
	PlanRawValues(ctx context.Context, req service.TripRequest) ([]any, error)
	Preview(payload any) (itinerary.Itinerary, error)
}

// QuotaGuard charges one plan to a client; *quota.Service satisfies it.
type QuotaGuard interface {
	Use(ctx context.Context, clientID string) error
}

type TripHandler struct {
	planner Planner
	quota   QuotaGuard
	timeout time.Duration
}

// NewTripHandler wires the handler. quota may be nil to disable the allowance check.
func NewTripHandler(planner Planner, quota QuotaGuard, timeout time.Duration) *TripHandler {
	return &TripHandler{planner: planner, quota: quota, timeout: timeout}
}

type previewReq struct {
	Payload any `json:"payload"`
}

// Plan handles POST /api/itineraries.
func (h *TripHandler) Plan(c *gin.Context) {
	req, ok := h.bindTrip(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	it, err := h.planner.PlanItinerary(ctx, req)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"itinerary": it})
}

// PlanRaw handles POST /api/itineraries/raw.
func (h *TripHandler) PlanRaw(c *gin.Context) {
	req, ok := h.bindTrip(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	values, err := h.planner.PlanRawValues(ctx, req)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"raw_values": values})
}

// Preview handles POST /api/itineraries/preview.
func (h *TripHandler) Preview(c *gin.Context) {
	var req previewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Payload == nil {
		writeError(c, http.StatusBadRequest, "missing payload")
		return
	}

	it, err := h.planner.Preview(req.Payload)
	if err != nil {
		var decodeErr *itinerary.DecodeError
		if errors.As(err, &decodeErr) {
			writeError(c, http.StatusUnprocessableEntity, "payload is not a readable agent response")
			return
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"itinerary": it})
}

// bindTrip parses the form and charges the client's quota. It writes the error response itself.
func (h *TripHandler) bindTrip(c *gin.Context) (service.TripRequest, bool) {
	var req service.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return req, false
	}
	if err := req.Validate(); err != nil {
		writePlanError(c, err)
		return req, false
	}
	if h.quota != nil {
		if err := h.quota.Use(c.Request.Context(), c.ClientIP()); err != nil {
			writePlanError(c, err)
			return req, false
		}
	}
	return req, true
}
