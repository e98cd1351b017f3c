package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"wandersmart/internal/ai"
	"wandersmart/internal/itinerary"
	"wandersmart/internal/maps"
)

type stubPipeline struct {
	out    *ai.CrewOutput
	err    error
	inputs ai.Inputs
	calls  int
}

func (s *stubPipeline) Kickoff(_ context.Context, inputs ai.Inputs) (*ai.CrewOutput, error) {
	s.calls++
	s.inputs = inputs
	return s.out, s.err
}

type stubResolver struct {
	dest *maps.Destination
	err  error
}

func (s stubResolver) Resolve(context.Context, string) (*maps.Destination, error) {
	return s.dest, s.err
}

func validRequest() TripRequest {
	return TripRequest{
		Name:        "Ada",
		Destination: "Paris",
		Budget:      3000,
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-08",
		Interests:   []string{"Art", "Food"},
	}
}

func newPlanner(p ai.Pipeline, r DestinationResolver) *TripPlanner {
	return NewTripPlanner(p, r, itinerary.NewProcessor(nil, itinerary.Options{}), nil)
}

func TestPlanItinerary(t *testing.T) {
	pipeline := &stubPipeline{out: &ai.CrewOutput{
		Raw: "```json\n{\"destination\":\"Paris\",\"budget\":\"3000 USD\",\"travel_details\":{\"flights\":{\"service_providers\":[\"Air France\"]}}}\n```",
	}}
	planner := newPlanner(pipeline, stubResolver{dest: &maps.Destination{FormattedAddress: "Paris, France", Country: "France"}})

	it, err := planner.PlanItinerary(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}
	if it.Destination != "Paris" || it.Budget != "3000 USD" {
		t.Errorf("unexpected itinerary %+v", it)
	}
	if !reflect.DeepEqual(it.Flights, []any{"Air France"}) {
		t.Errorf("flights = %#v", it.Flights)
	}
	if pipeline.inputs["destination_address"] != "Paris, France" || pipeline.inputs["country"] != "France" {
		t.Errorf("geocoded fields not passed: %#v", pipeline.inputs)
	}
	if pipeline.inputs["interests"] != "Art, Food" {
		t.Errorf("interests input = %#v", pipeline.inputs["interests"])
	}
}

func TestPlanItinerary_ResolverFailureIsSoft(t *testing.T) {
	pipeline := &stubPipeline{out: &ai.CrewOutput{Raw: `{}`}}
	planner := newPlanner(pipeline, stubResolver{err: maps.ErrDestinationNotFound})

	if _, err := planner.PlanItinerary(context.Background(), validRequest()); err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}
	if pipeline.inputs["destination_address"] != "Paris" {
		t.Errorf("expected fallback to the typed destination, got %#v", pipeline.inputs["destination_address"])
	}
}

func TestPlanItinerary_UnreadableOutput(t *testing.T) {
	planner := newPlanner(&stubPipeline{out: &ai.CrewOutput{Raw: "Sorry, I could not find flights."}}, nil)

	_, err := planner.PlanItinerary(context.Background(), validRequest())
	var de *itinerary.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *itinerary.DecodeError, got %v", err)
	}
}

func TestPlanItinerary_PipelineError(t *testing.T) {
	planner := newPlanner(&stubPipeline{err: ai.ErrEmptyCompletion}, nil)
	_, err := planner.PlanItinerary(context.Background(), validRequest())
	if !errors.Is(err, ai.ErrEmptyCompletion) {
		t.Fatalf("expected wrapped pipeline error, got %v", err)
	}
}

func TestPlanItinerary_InvalidRequestSkipsPipeline(t *testing.T) {
	pipeline := &stubPipeline{}
	req := validRequest()
	req.Name = " "

	_, err := newPlanner(pipeline, nil).PlanItinerary(context.Background(), req)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if pipeline.calls != 0 {
		t.Errorf("pipeline called %d times", pipeline.calls)
	}
}

func TestPlanRawValues(t *testing.T) {
	pipeline := &stubPipeline{out: &ai.CrewOutput{
		Raw: "final",
		TasksOutput: []ai.TaskOutput{
			{Name: "search_task", Raw: "research"},
			{Name: "itinerary_task", Raw: "final"},
		},
	}}
	got, err := newPlanner(pipeline, nil).PlanRawValues(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("PlanRawValues: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"final", "research", "final"}) {
		t.Errorf("got %#v", got)
	}
}

func TestPlan_BothViewsFromOneRun(t *testing.T) {
	pipeline := &stubPipeline{out: &ai.CrewOutput{
		Raw:         `{"destination":"Kyoto"}`,
		TasksOutput: []ai.TaskOutput{{Name: "itinerary_task", Raw: `{"destination":"Kyoto"}`}},
		TokenUsage:  ai.UsageMetrics{TotalTokens: 9},
	}}
	plan, err := newPlanner(pipeline, nil).Plan(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if pipeline.calls != 1 {
		t.Errorf("pipeline called %d times", pipeline.calls)
	}
	if plan.Itinerary.Destination != "Kyoto" || len(plan.RawValues) != 2 || plan.TokenUsage.TotalTokens != 9 {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestPreview(t *testing.T) {
	it, err := newPlanner(&stubPipeline{}, nil).Preview(map[string]any{"destination": "Oslo"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if it.Destination != "Oslo" || it.Budget != itinerary.DefaultBudget {
		t.Errorf("unexpected itinerary %+v", it)
	}
}

func TestTripRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TripRequest)
		ok     bool
	}{
		{"valid", func(*TripRequest) {}, true},
		{"same day", func(r *TripRequest) { r.EndDate = r.StartDate }, true},
		{"no interests", func(r *TripRequest) { r.Interests = nil }, true},
		{"missing name", func(r *TripRequest) { r.Name = "" }, false},
		{"missing destination", func(r *TripRequest) { r.Destination = "  " }, false},
		{"budget too low", func(r *TripRequest) { r.Budget = 100 }, false},
		{"budget too high", func(r *TripRequest) { r.Budget = 20000 }, false},
		{"bad date", func(r *TripRequest) { r.StartDate = "06/01/2026" }, false},
		{"end before start", func(r *TripRequest) { r.EndDate = "2026-05-01" }, false},
		{"unknown interest", func(r *TripRequest) { r.Interests = []string{"Skydiving"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}
