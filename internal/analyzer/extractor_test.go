package analyzer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/internal/ner"
	"github.com/greenfolio/sustainability-rater/test/mocks"
)

func TestExtractMetricsFromText_EntityPass(t *testing.T) {
	text := "We achieved a 40% cut in our carbon footprint last year"
	start := strings.Index(text, "40%")
	recognizer := &mocks.MockEntityRecognizer{
		RecognizeFunc: func(ctx context.Context, _ string) ([]ner.Entity, error) {
			return []ner.Entity{
				{Text: "40%", Label: "PERCENT", Start: start, End: start + 3},
			}, nil
		},
	}
	a := newTestAnalyzer(nil, recognizer)

	metrics := a.ExtractMetricsFromText(context.Background(), text)

	require.Len(t, metrics, 1)
	assert.Equal(t, "carbon_footprint", metrics[0].Type)
	assert.Equal(t, "40%", metrics[0].Value)
	assert.Equal(t, 0.8, metrics[0].Confidence)
	assert.Contains(t, metrics[0].Context, "carbon footprint")
}

func TestExtractMetricsFromText_NonQuantityEntitiesSkipped(t *testing.T) {
	recognizer := &mocks.MockEntityRecognizer{
		RecognizeFunc: func(ctx context.Context, _ string) ([]ner.Entity, error) {
			return []ner.Entity{
				{Text: "Acme", Label: "ORG", Start: 0, End: 4},
			}, nil
		},
	}
	a := newTestAnalyzer(nil, recognizer)

	metrics := a.ExtractMetricsFromText(context.Background(), "Acme cares about carbon")
	assert.Empty(t, metrics)
}

func TestExtractMetricsFromText_UnclassifiableContextSkipped(t *testing.T) {
	recognizer := &mocks.MockEntityRecognizer{
		RecognizeFunc: func(ctx context.Context, _ string) ([]ner.Entity, error) {
			return []ner.Entity{
				{Text: "12", Label: "CARDINAL", Start: 9, End: 11},
			}, nil
		},
	}
	a := newTestAnalyzer(nil, recognizer)

	metrics := a.ExtractMetricsFromText(context.Background(), "We found 12 new suppliers")
	assert.Empty(t, metrics)
}

func TestExtractMetricsFromText_PatternPass(t *testing.T) {
	a := newTestAnalyzer(nil, nil)

	metrics := a.ExtractMetricsFromText(context.Background(),
		"We target 30% carbon reduction and carbon neutral operations by 2035")

	require.Len(t, metrics, 2)
	assert.Equal(t, "carbon_reduction", metrics[0].Type)
	assert.Equal(t, "30", metrics[0].Value)
	assert.Equal(t, 0.6, metrics[0].Confidence)
	assert.Equal(t, "carbon_neutral_target", metrics[1].Type)
	assert.Equal(t, "2035", metrics[1].Value)
}

func TestExtractMetricsFromText_DuplicatesPreserved(t *testing.T) {
	// The entity pass and the pattern pass both hit the same figure; the
	// extractor keeps both, distinguished by confidence.
	text := "50% renewable energy by 2030"
	recognizer := &mocks.MockEntityRecognizer{
		RecognizeFunc: func(ctx context.Context, _ string) ([]ner.Entity, error) {
			return []ner.Entity{
				{Text: "50%", Label: "PERCENT", Start: 0, End: 3},
			}, nil
		},
	}
	a := newTestAnalyzer(nil, recognizer)

	metrics := a.ExtractMetricsFromText(context.Background(), text)

	require.Len(t, metrics, 2)
	assert.Equal(t, "renewable_energy", metrics[0].Type)
	assert.Equal(t, 0.8, metrics[0].Confidence)
	assert.Equal(t, "renewable_energy", metrics[1].Type)
	assert.Equal(t, 0.6, metrics[1].Confidence)
}

func TestExtractMetricsFromText_RecognizerFailureFallsBackToPatterns(t *testing.T) {
	recognizer := &mocks.MockEntityRecognizer{
		RecognizeFunc: func(ctx context.Context, _ string) ([]ner.Entity, error) {
			return nil, fmt.Errorf("service unavailable")
		},
	}
	a := newTestAnalyzer(nil, recognizer)

	metrics := a.ExtractMetricsFromText(context.Background(), "We target 30% carbon reduction")

	require.Len(t, metrics, 1)
	assert.Equal(t, "carbon_reduction", metrics[0].Type)
	assert.Equal(t, 0.6, metrics[0].Confidence)
}

func TestClassifyMetricType(t *testing.T) {
	tests := []struct {
		context string
		want    string
	}{
		{"our carbon footprint shrank", "carbon_footprint"},
		{"carbon output overall", "carbon_footprint"}, // family default
		{"renewable energy adoption", "renewable_energy"},
		{"water conservation program", "water_conservation"},
		{"recycling rate improved", "recycling_rate"},
		{"no relevant keyword", ""},
	}

	for _, tt := range tests {
		got := classifyMetricType(tt.context)
		assert.Equal(t, tt.want, got, "context %q", tt.context)
	}
}

func TestContextWindow_ClipsToBounds(t *testing.T) {
	text := "short"
	assert.Equal(t, "short", contextWindow(text, 0, 5, 50))
	assert.Equal(t, "hor", contextWindow(text, 1, 4, 0))
}
