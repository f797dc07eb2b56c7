package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/runesight/runesight/pkg/errors"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini is a Completer backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini completer. The API key is required; the model
// falls back to DefaultGeminiModel when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("gemini", "API key required", errors.ErrAPIKeyRequired)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.NewConfigError("gemini", "creating client", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// Complete sends the prompt and returns the response text.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &errors.APIError{
			Service:  "gemini",
			Endpoint: g.model,
			Message:  "generating content",
			Err:      err,
		}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &errors.APIError{
			Service:  "gemini",
			Endpoint: g.model,
			Message:  "empty response",
			Err:      errors.ErrUpstreamUnavailable,
		}
	}
	return text, nil
}
