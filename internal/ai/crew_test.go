package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubModel replays canned completions and records the prompts it receives.
type stubModel struct {
	replies []Completion
	err     error
	prompts []string
}

func (s *stubModel) Generate(_ context.Context, prompt string) (Completion, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return Completion{}, s.err
	}
	c := s.replies[0]
	s.replies = s.replies[1:]
	return c, nil
}

func TestCrewKickoff_SequentialContext(t *testing.T) {
	model := &stubModel{replies: []Completion{
		{Text: "research notes", PromptTokens: 10, CompletionTokens: 5},
		{Text: "```json\n{\"destination\":\"Rome\"}\n```", PromptTokens: 20, CompletionTokens: 7},
	}}
	crew := NewCrew(model, DefaultTasks(), nil)

	out, err := crew.Kickoff(context.Background(), Inputs{
		"destination":         "Rome",
		"destination_address": "Rome, Metropolitan City of Rome, Italy",
		"budget":              2500,
		"start_date":          "2026-05-01",
		"end_date":            "2026-05-07",
		"interests":           []string{"History", "Food"},
	})
	if err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	if len(model.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(model.prompts))
	}
	first := model.prompts[0]
	for _, want := range []string{"Rome", "2026-05-01", "$2500", "History, Food", "research_specialist"} {
		if !strings.Contains(first, want) {
			t.Errorf("first prompt missing %q:\n%s", want, first)
		}
	}
	if strings.Contains(first, "{destination}") {
		t.Errorf("placeholder left in prompt:\n%s", first)
	}
	if !strings.Contains(model.prompts[1], "research notes") {
		t.Errorf("second prompt lacks previous task output:\n%s", model.prompts[1])
	}

	if out.Raw != "```json\n{\"destination\":\"Rome\"}\n```" {
		t.Errorf("Raw = %q", out.Raw)
	}
	if len(out.TasksOutput) != 2 || out.TasksOutput[0].Name != "search_task" {
		t.Errorf("unexpected tasks output %+v", out.TasksOutput)
	}
	want := UsageMetrics{PromptTokens: 30, CompletionTokens: 12, TotalTokens: 42, SuccessfulRequests: 2}
	if out.TokenUsage != want {
		t.Errorf("TokenUsage = %+v, want %+v", out.TokenUsage, want)
	}
}

func TestCrewKickoff_NoTasks(t *testing.T) {
	_, err := NewCrew(&stubModel{}, nil, nil).Kickoff(context.Background(), Inputs{})
	if !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestCrewKickoff_EmptyCompletion(t *testing.T) {
	model := &stubModel{replies: []Completion{{Text: "   "}}}
	_, err := NewCrew(model, DefaultTasks(), nil).Kickoff(context.Background(), Inputs{})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCrewKickoff_ModelError(t *testing.T) {
	boom := errors.New("quota")
	_, err := NewCrew(&stubModel{err: boom}, DefaultTasks(), nil).Kickoff(context.Background(), Inputs{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped model error, got %v", err)
	}
	if !strings.Contains(err.Error(), "search_task") {
		t.Errorf("error does not name the failing task: %v", err)
	}
}

func TestRender(t *testing.T) {
	got := render("{a} and {b} and {missing}", Inputs{"a": "x", "b": []string{"y", "z"}})
	if got != "x and y, z and {missing}" {
		t.Errorf("render = %q", got)
	}
}
