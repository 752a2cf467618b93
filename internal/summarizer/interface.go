package summarizer

import "context"

// Summarizer sends a compiled prompt to a text-generation service and returns the completion.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider and model, e.g. "ollama/llama3.1:8b"
	Name() string
}
