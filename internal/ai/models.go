package ai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCompletion is returned when a model answers with no usable text.
	ErrEmptyCompletion = errors.New("model returned empty completion")
	// ErrNoTasks is returned when a crew is kicked off without any task.
	ErrNoTasks = errors.New("crew has no tasks")
)

// Inputs are the trip parameters interpolated into task descriptions.
// Keys match the placeholders, e.g. "destination" fills {destination}.
type Inputs map[string]any

// Completion is one model response.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Task is one step of a crew run.
type Task struct {
	// Name identifies the task in the output (e.g. "search_task").
	Name string
	// Agent is the role the model is asked to play (e.g. "research_specialist").
	Agent string
	// Description is the prompt template; {key} placeholders are filled from Inputs.
	Description string
	// ExpectedOutput tells the model what shape to answer in.
	ExpectedOutput string
}

// TaskOutput is the recorded result of one task.
type TaskOutput struct {
	Name        string
	Agent       string
	Description string
	Raw         string
}

// UsageMetrics sums token usage across every task of a run.
type UsageMetrics struct {
	PromptTokens       int
	CompletionTokens   int
	TotalTokens        int
	SuccessfulRequests int
}

// CrewOutput is the result of a crew run. Raw holds the final task's text.
type CrewOutput struct {
	Raw         string
	TasksOutput []TaskOutput
	TokenUsage  UsageMetrics
}

// ToMap renders the output as a plain tree whose text results sit under "raw" keys.
func (o *CrewOutput) ToMap() (map[string]any, error) {
	if o == nil {
		return nil, fmt.Errorf("nil crew output")
	}
	tasks := make([]any, 0, len(o.TasksOutput))
	for _, t := range o.TasksOutput {
		tasks = append(tasks, map[string]any{
			"name":        t.Name,
			"agent":       t.Agent,
			"description": t.Description,
			"raw":         t.Raw,
		})
	}
	return map[string]any{
		"raw":          o.Raw,
		"tasks_output": tasks,
		"token_usage": map[string]any{
			"prompt_tokens":       float64(o.TokenUsage.PromptTokens),
			"completion_tokens":   float64(o.TokenUsage.CompletionTokens),
			"total_tokens":        float64(o.TokenUsage.TotalTokens),
			"successful_requests": float64(o.TokenUsage.SuccessfulRequests),
		},
	}, nil
}

// render fills {key} placeholders in tmpl from inputs. Slices are joined with ", ".
func render(tmpl string, inputs Inputs) string {
	pairs := make([]string, 0, len(inputs)*2)
	for k, v := range inputs {
		pairs = append(pairs, "{"+k+"}", formatInput(v))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func formatInput(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
