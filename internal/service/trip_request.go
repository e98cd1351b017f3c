package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"wandersmart/internal/ai"
)

const (
	MinBudget  = 500
	MaxBudget  = 10000
	dateLayout = "2006-01-02"
)

// ErrInvalidRequest is wrapped by every trip request validation failure.
var ErrInvalidRequest = errors.New("invalid trip request")

// Interests lists the topics a traveller may pick.
var Interests = []string{"History", "Art", "Food", "Nightlife", "Nature", "Shopping"}

// TripRequest is one submission of the trip planning form.
type TripRequest struct {
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	Budget      float64  `json:"budget"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Interests   []string `json:"interests"`
}

// Validate trims the request in place and checks it.
func (r *TripRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Destination = strings.TrimSpace(r.Destination)

	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if r.Budget < MinBudget || r.Budget > MaxBudget {
		return fmt.Errorf("%w: budget must be between %d and %d", ErrInvalidRequest, MinBudget, MaxBudget)
	}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date must be before the end date", ErrInvalidRequest)
	}

	for _, interest := range r.Interests {
		if !slices.Contains(Interests, interest) {
			return fmt.Errorf("%w: unknown interest %q", ErrInvalidRequest, interest)
		}
	}
	return nil
}

// inputs maps the request onto the pipeline's placeholders.
func (r *TripRequest) inputs() ai.Inputs {
	interests := "no particular preference"
	if len(r.Interests) > 0 {
		interests = strings.Join(r.Interests, ", ")
	}
	return ai.Inputs{
		"name":                r.Name,
		"destination":         r.Destination,
		"destination_address": r.Destination,
		"country":             "",
		"budget":              r.Budget,
		"start_date":          r.StartDate,
		"end_date":            r.EndDate,
		"interests":           interests,
	}
}
