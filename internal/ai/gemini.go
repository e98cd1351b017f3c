package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiModel implements TextModel using Google's Gemini models.
type GeminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiModel initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Research notes are prose, so JSON mode stays off; the decoder handles fenced JSON.
	model.SetTemperature(0.4)

	return &GeminiModel{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (m *GeminiModel) Close() error {
	return m.client.Close()
}

// Generate sends prompt to Gemini and joins the text parts of the first candidate.
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (Completion, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Completion{}, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Completion{}, fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	var textParts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		textParts = append(textParts, string(txt))
	}
	if len(textParts) == 0 {
		return Completion{}, fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	c := Completion{Text: strings.Join(textParts, "\n")}
	if u := resp.UsageMetadata; u != nil {
		c.PromptTokens = int(u.PromptTokenCount)
		c.CompletionTokens = int(u.CandidatesTokenCount)
	}
	return c, nil
}
