package mocks

import (
	"context"

	"github.com/greenfolio/sustainability-rater/internal/ner"
)

// MockQualityRater is a simple mock for the language model client.
type MockQualityRater struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	Calls        []string
}

func (m *MockQualityRater) Complete(ctx context.Context, prompt string) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "0.5", nil
}

// MockEntityRecognizer is a simple mock for the entity-recognition client.
type MockEntityRecognizer struct {
	RecognizeFunc func(ctx context.Context, text string) ([]ner.Entity, error)
}

func (m *MockEntityRecognizer) Recognize(ctx context.Context, text string) ([]ner.Entity, error) {
	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, text)
	}
	return nil, nil
}
