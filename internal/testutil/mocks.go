package testutil

import (
	"context"
)

// MockProvider implements llm.Provider
type MockProvider struct {
	OnComplete func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Calls      int
}

func (m *MockProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Calls++
	if m.OnComplete != nil {
		return m.OnComplete(ctx, systemPrompt, userPrompt)
	}
	return `{"products": "mocked product"}`, nil
}

func (m *MockProvider) Name() string {
	return "mock"
}
