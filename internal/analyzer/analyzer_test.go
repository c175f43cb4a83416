package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/pkg/logger"
	"github.com/greenfolio/sustainability-rater/test/mocks"
)

func newTestAnalyzer(rater QualityRater, recognizer EntityRecognizer) *Analyzer {
	return New(rater, recognizer, logger.Nop())
}

func TestAnalyzeCommitmentQuality_EmptyInput(t *testing.T) {
	a := newTestAnalyzer(&mocks.MockQualityRater{}, nil)

	analysis := a.AnalyzeCommitmentQuality(context.Background(), nil)

	assert.Equal(t, 0.0, analysis.Quality)
	assert.Equal(t, 0.0, analysis.Specificity)
	assert.Equal(t, 0.5, analysis.Sentiment)
}

func TestAnalyzeCommitmentQuality_SingleCommitment(t *testing.T) {
	rater := &mocks.MockQualityRater{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "0.8", nil
		},
	}
	a := newTestAnalyzer(rater, nil)

	analysis := a.AnalyzeCommitmentQuality(context.Background(), []string{
		"Achieve carbon neutral operations by 2030",
	})

	assert.InDelta(t, 0.8, analysis.Quality, 1e-9)
	// year 0.2 + digit 0.1 + "achieve" 0.1 + "by" 0.2 + "carbon neutral" 0.1
	assert.InDelta(t, 0.7, analysis.Specificity, 1e-9)
	// one positive lexicon hit, no negatives
	assert.InDelta(t, 1.0, analysis.Sentiment, 1e-9)
}

func TestAnalyzeCommitmentQuality_AveragesAcrossCommitments(t *testing.T) {
	scores := []string{"0.9", "0.5"}
	call := 0
	rater := &mocks.MockQualityRater{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			score := scores[call]
			call++
			return score, nil
		},
	}
	a := newTestAnalyzer(rater, nil)

	analysis := a.AnalyzeCommitmentQuality(context.Background(), []string{
		"Reduce carbon emissions by 50% by 2030",
		"We care about the planet",
	})

	assert.InDelta(t, 0.7, analysis.Quality, 1e-9)
	// first commitment scores 0.9, second 0.0
	assert.InDelta(t, 0.45, analysis.Specificity, 1e-9)
	require.Len(t, rater.Calls, 2)
	assert.Contains(t, rater.Calls[0], `Commitment: "Reduce carbon emissions by 50% by 2030"`)
}

func TestRateQuality_ParsesFirstDecimal(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{"bare number", "0.85", 0.85},
		{"number with prose", "I would rate this commitment 0.7 overall", 0.7},
		{"integer clamps to one", "8", 1.0},
		{"above range clamps", "1.5", 1.0},
		{"no number defaults", "this commitment is vague", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rater := &mocks.MockQualityRater{
				CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
					return tt.response, nil
				},
			}
			a := newTestAnalyzer(rater, nil)

			analysis := a.AnalyzeCommitmentQuality(context.Background(), []string{"test"})
			assert.InDelta(t, tt.want, analysis.Quality, 1e-9)
		})
	}
}

func TestRateQuality_ModelFailureUsesNeutralDefault(t *testing.T) {
	rater := &mocks.MockQualityRater{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", fmt.Errorf("model unavailable")
		},
	}
	a := newTestAnalyzer(rater, nil)

	analysis := a.AnalyzeCommitmentQuality(context.Background(), []string{"test"})
	assert.Equal(t, 0.5, analysis.Quality)
}

func TestRateQuality_NoRaterUsesNeutralDefault(t *testing.T) {
	a := newTestAnalyzer(nil, nil)

	analysis := a.AnalyzeCommitmentQuality(context.Background(), []string{"test"})
	assert.Equal(t, 0.5, analysis.Quality)
}

func TestSpecificityScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"vague statement", "We care about the planet", 0.0},
		{"percent year digits verb timeframe", "Reduce carbon emissions by 50% by 2030", 0.9},
		{"year and digit only", "2030 goals", 0.3},
		{"outcome phrases stack", "Our net zero and carbon neutral and renewable energy plan", 0.3},
		{"caps at one", "Commit to reduce 50% waste reduction by 2030 for carbon neutral net zero renewable energy", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, specificityScore(tt.text), 1e-9)
		})
	}
}

func TestSpecificityScore_Ordering(t *testing.T) {
	concrete := specificityScore("Reduce carbon emissions by 50% by 2030")
	vague := specificityScore("We care about the planet")
	assert.Greater(t, concrete, vague)
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no lexicon hits", "our annual report", 0.0},
		{"purely positive", "sustainable and renewable", 1.0},
		{"purely negative floors at zero", "pollution and toxic waste", 0.0},
		// "renewable" and "reduce" (inside "reduces") hit the positive
		// lexicon, "pollution" the negative: (2-1)/3
		{"mixed polarity", "renewable energy reduces pollution", 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, sentimentScore(tt.text), 1e-9)
		})
	}
}
