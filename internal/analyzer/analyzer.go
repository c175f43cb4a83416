// Package analyzer turns free-text sustainability commitments into
// quality, specificity and sentiment signals, and extracts candidate
// quantitative metrics from narrative text.
package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	prommetrics "github.com/greenfolio/sustainability-rater/internal/metrics"
	"github.com/greenfolio/sustainability-rater/internal/ner"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// QualityRater is the narrow contract to the external language model: one
// prompt in, free-form text out. The analyzer extracts the first decimal
// number from the reply.
type QualityRater interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EntityRecognizer is the narrow contract to the external entity-recognition
// service.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]ner.Entity, error)
}

// Analysis aggregates per-signal means across a set of commitments. All
// values are in [0,1].
type Analysis struct {
	Quality     float64 `json:"quality_score"`
	Specificity float64 `json:"specificity_score"`
	Sentiment   float64 `json:"sentiment_score"`
}

// Analyzer analyzes commitment text. The language model and entity
// recognizer are external collaborators; either one failing degrades the
// affected signal instead of aborting the analysis.
type Analyzer struct {
	rater      QualityRater
	recognizer EntityRecognizer
	log        *logger.Logger
}

// New creates a commitment text analyzer.
func New(rater QualityRater, recognizer EntityRecognizer, log *logger.Logger) *Analyzer {
	return &Analyzer{
		rater:      rater,
		recognizer: recognizer,
		log:        log,
	}
}

const qualityPromptFormat = `Analyze this sustainability commitment and rate its quality on a scale of 0.0 to 1.0:

Commitment: "%s"

Consider:
- Specificity (concrete goals vs vague statements)
- Measurability (quantifiable targets)
- Timeframe (clear deadlines)
- Credibility (realistic and achievable)
- Impact potential (meaningful environmental/social benefit)

Return only a number between 0.0 and 1.0:`

// neutralQuality is returned when the language model is unavailable or its
// reply cannot be parsed.
const neutralQuality = 0.5

var scorePattern = regexp.MustCompile(`\d*\.?\d+`)

// AnalyzeCommitmentQuality scores each commitment's quality, specificity and
// sentiment, and returns the arithmetic mean of each signal. Empty input
// yields {0, 0, 0.5}.
func (a *Analyzer) AnalyzeCommitmentQuality(ctx context.Context, commitments []string) Analysis {
	if len(commitments) == 0 {
		return Analysis{Quality: 0.0, Specificity: 0.0, Sentiment: 0.5}
	}

	var qualitySum, specificitySum, sentimentSum float64
	for _, commitment := range commitments {
		sentimentSum += sentimentScore(commitment)
		specificitySum += specificityScore(commitment)
		qualitySum += a.rateQuality(ctx, commitment)
	}

	n := float64(len(commitments))
	return Analysis{
		Quality:     qualitySum / n,
		Specificity: specificitySum / n,
		Sentiment:   sentimentSum / n,
	}
}

// rateQuality asks the language model for a 0.0-1.0 quality rating. Any
// failure degrades to the neutral default; a single commitment's rating
// never fails the calculation.
func (a *Analyzer) rateQuality(ctx context.Context, commitment string) float64 {
	if a.rater == nil {
		return neutralQuality
	}

	response, err := a.rater.Complete(ctx, fmt.Sprintf(qualityPromptFormat, commitment))
	if err != nil {
		a.log.Warn().Err(err).Msg("Language model quality rating failed, using neutral default")
		prommetrics.RecordExternalServiceFailure("language_model")
		return neutralQuality
	}

	match := scorePattern.FindString(response)
	if match == "" {
		a.log.Warn().Str("response", truncate(response, 120)).Msg("No score found in language model reply")
		return neutralQuality
	}

	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return neutralQuality
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
