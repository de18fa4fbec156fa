package llm

import "context"

// Provider is a single-shot, non-streaming completion call.
type Provider interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
	Name() string
}
