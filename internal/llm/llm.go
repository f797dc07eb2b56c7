// Package llm abstracts text completion behind a small interface so the
// analysis layer never depends on a specific model vendor.
package llm

import "context"

// Completer produces a text completion for a prompt.
type Completer interface {
	// Complete returns the model's response text for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model identifies the underlying model, for logging and responses.
	Model() string
}
