package ai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Crew runs its tasks in order against one model, feeding each task the results of the
// tasks before it.
type Crew struct {
	model  TextModel
	tasks  []Task
	logger *slog.Logger
}

// NewCrew creates a sequential crew. A nil logger discards log output.
func NewCrew(model TextModel, tasks []Task, logger *slog.Logger) *Crew {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Crew{
		model:  model,
		tasks:  tasks,
		logger: logger.With("component", "crew"),
	}
}

// Kickoff runs every task and returns the collected output.
func (c *Crew) Kickoff(ctx context.Context, inputs Inputs) (*CrewOutput, error) {
	if len(c.tasks) == 0 {
		return nil, ErrNoTasks
	}

	out := &CrewOutput{TasksOutput: make([]TaskOutput, 0, len(c.tasks))}
	for _, task := range c.tasks {
		description := render(task.Description, inputs)
		prompt := buildTaskPrompt(task, description, out.TasksOutput)

		start := time.Now()
		completion, err := c.model.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Name, err)
		}
		if strings.TrimSpace(completion.Text) == "" {
			return nil, fmt.Errorf("task %s: %w", task.Name, ErrEmptyCompletion)
		}
		c.logger.Info("task completed",
			"task", task.Name,
			"agent", task.Agent,
			"duration", time.Since(start),
			"prompt_tokens", completion.PromptTokens,
			"completion_tokens", completion.CompletionTokens,
		)

		out.TasksOutput = append(out.TasksOutput, TaskOutput{
			Name:        task.Name,
			Agent:       task.Agent,
			Description: description,
			Raw:         completion.Text,
		})
		out.TokenUsage.PromptTokens += completion.PromptTokens
		out.TokenUsage.CompletionTokens += completion.CompletionTokens
		out.TokenUsage.TotalTokens += completion.PromptTokens + completion.CompletionTokens
		out.TokenUsage.SuccessfulRequests++
		out.Raw = completion.Text
	}
	return out, nil
}

func buildTaskPrompt(task Task, description string, previous []TaskOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n\nTask:\n%s\n", task.Agent, description)
	if task.ExpectedOutput != "" {
		fmt.Fprintf(&b, "\nExpected output:\n%s\n", task.ExpectedOutput)
	}
	if len(previous) > 0 {
		b.WriteString("\nContext from previous tasks:\n")
		for _, p := range previous {
			fmt.Fprintf(&b, "\n[%s by %s]\n%s\n", p.Name, p.Agent, p.Raw)
		}
	}
	return b.String()
}
