// README: Canonical itinerary shape, default values, and core error types.
package itinerary

import (
	"errors"
	"fmt"
)

const (
	DefaultDestination = "Destination not specified"
	DefaultBudget      = "Budget not specified"

	// DefaultMaxDepth bounds the extractor's recursion.
	DefaultMaxDepth = 512
)

var (
	// ErrEmptyResponse is wrapped by DecodeError when the agent output is blank.
	ErrEmptyResponse = errors.New("empty agent response")
	// ErrMaxDepth is wrapped by ExtractionError when the tree nests deeper than allowed.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// Itinerary is the normalized, always fully populated view of an agent response.
type Itinerary struct {
	Destination         string         `json:"destination"`
	Budget              string         `json:"budget"`
	Interests           []string       `json:"interests"`
	TravelDetails       map[string]any `json:"travel_details"`
	Flights             []any          `json:"flights"`
	Accommodations      []any          `json:"accommodations"`
	Tours               []any          `json:"tours"`
	AdditionalResources []any          `json:"additional_resources"`

	// Error is set only when normalization recovered from an internal failure.
	Error string `json:"error,omitempty"`
}

// Empty returns an itinerary holding every default value.
func Empty() Itinerary {
	return Itinerary{
		Destination:         DefaultDestination,
		Budget:              DefaultBudget,
		Interests:           []string{},
		TravelDetails:       map[string]any{},
		Flights:             []any{},
		Accommodations:      []any{},
		Tours:               []any{},
		AdditionalResources: []any{},
	}
}

// MapConverter is implemented by agent outputs that can render themselves as a plain mapping.
type MapConverter interface {
	ToMap() (map[string]any, error)
}

// DecodeError reports agent output that could not be turned into a tree.
type DecodeError struct {
	// Input is the text that failed to decode, after fence stripping, or the %+v
	// rendering of a value that could not be converted.
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode agent response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a tree the extractor refused to walk.
type ExtractionError struct {
	Path  string
	Depth int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract raw values at %s (depth %d): %v", e.Path, e.Depth, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
