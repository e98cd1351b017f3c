package ai

import (
	"context"
)

// TextModel is the contract for a single prompt/response exchange with an LLM.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.).
type TextModel interface {
	// Generate sends prompt to the model and returns its text along with token usage.
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// Pipeline is the multi-agent travel planner seen from the outside: trip parameters in,
// loosely structured agent output back.
type Pipeline interface {
	Kickoff(ctx context.Context, inputs Inputs) (*CrewOutput, error)
}
