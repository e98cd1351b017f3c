package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"wandersmart/internal/ai"
	"wandersmart/internal/itinerary"
	"wandersmart/internal/maps"
)

// DestinationResolver looks up a free-text destination; *maps.DestinationService satisfies it.
type DestinationResolver interface {
	Resolve(ctx context.Context, query string) (*maps.Destination, error)
}

// TripPlanner orchestrates the agent pipeline and the normalization of its output.
type TripPlanner struct {
	pipeline     ai.Pipeline
	destinations DestinationResolver
	processor    *itinerary.Processor
	logger       *slog.Logger
}

// NewTripPlanner creates a TripPlanner. destinations may be nil to skip geocoding;
// a nil logger discards log output.
func NewTripPlanner(pipeline ai.Pipeline, destinations DestinationResolver, processor *itinerary.Processor, logger *slog.Logger) *TripPlanner {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &TripPlanner{
		pipeline:     pipeline,
		destinations: destinations,
		processor:    processor,
		logger:       logger.With("component", "trip_planner"),
	}
}

// PlanItinerary runs the pipeline and returns its final answer as a canonical itinerary.
func (p *TripPlanner) PlanItinerary(ctx context.Context, req TripRequest) (itinerary.Itinerary, error) {
	out, err := p.kickoff(ctx, &req)
	if err != nil {
		return itinerary.Itinerary{}, err
	}
	return p.processor.DecodeAndNormalize(out.Raw)
}

// PlanRawValues runs the pipeline and returns every "raw" text it produced, final answer first.
func (p *TripPlanner) PlanRawValues(ctx context.Context, req TripRequest) ([]any, error) {
	out, err := p.kickoff(ctx, &req)
	if err != nil {
		return nil, err
	}
	return p.processor.DecodeAndExtract(out)
}

// Plan holds both views of a single pipeline run.
type Plan struct {
	Itinerary  itinerary.Itinerary `json:"itinerary"`
	RawValues  []any               `json:"raw_values"`
	TokenUsage ai.UsageMetrics     `json:"token_usage"`
}

// Plan runs the pipeline once and returns the normalized itinerary and the raw values together.
func (p *TripPlanner) Plan(ctx context.Context, req TripRequest) (*Plan, error) {
	out, err := p.kickoff(ctx, &req)
	if err != nil {
		return nil, err
	}
	it, err := p.processor.DecodeAndNormalize(out.Raw)
	if err != nil {
		return nil, err
	}
	values, err := p.processor.DecodeAndExtract(out)
	if err != nil {
		return nil, err
	}
	return &Plan{Itinerary: it, RawValues: values, TokenUsage: out.TokenUsage}, nil
}

// Preview normalizes an agent payload supplied by the caller without running the pipeline.
func (p *TripPlanner) Preview(payload any) (itinerary.Itinerary, error) {
	return p.processor.DecodeAndNormalize(payload)
}

func (p *TripPlanner) kickoff(ctx context.Context, req *TripRequest) (*ai.CrewOutput, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	inputs := req.inputs()

	if p.destinations != nil {
		dest, err := p.destinations.Resolve(ctx, req.Destination)
		if err != nil {
			p.logger.Warn("destination lookup failed", "destination", req.Destination, "error", err)
		} else {
			inputs["destination_address"] = dest.FormattedAddress
			inputs["country"] = dest.Country
		}
	}

	p.logger.Info("kickoff", "destination", req.Destination, "start_date", req.StartDate, "end_date", req.EndDate)
	out, err := p.pipeline.Kickoff(ctx, inputs)
	if err != nil {
		p.logger.Error("pipeline failed", "destination", req.Destination, "error", err)
		return nil, fmt.Errorf("agent pipeline: %w", err)
	}
	p.logger.Info("pipeline finished",
		"tasks", len(out.TasksOutput),
		"total_tokens", out.TokenUsage.TotalTokens,
	)
	return out, nil
}
