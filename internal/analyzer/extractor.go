package analyzer

import (
	"context"
	"regexp"
	"strings"

	prommetrics "github.com/greenfolio/sustainability-rater/internal/metrics"
)

// ExtractedMetric is a candidate quantitative metric found in narrative
// text. Value carries the surface form (a number or a year) as written.
type ExtractedMetric struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Context    string  `json:"context"`
	Confidence float64 `json:"confidence"`
}

// Extraction confidences: entity-backed hits carry more weight than bare
// pattern matches.
const (
	entityConfidence  = 0.8
	patternConfidence = 0.6
)

// metricFamily maps a context keyword to its candidate metric subtypes,
// ordered most common first. Scanning order matters, so this is a slice.
type metricFamily struct {
	keyword  string
	subtypes []string
}

var metricFamilies = []metricFamily{
	{"carbon", []string{"carbon_footprint", "carbon_reduction", "carbon_neutral"}},
	{"energy", []string{"renewable_energy", "energy_efficiency"}},
	{"water", []string{"water_usage", "water_conservation"}},
	{"waste", []string{"waste_reduction", "zero_waste"}},
	{"emission", []string{"emission_reduction", "greenhouse_gas"}},
	{"recycl", []string{"recycling_rate", "circular_economy"}},
}

// quantityLabels are the entity labels considered quantitative.
var quantityLabels = map[string]bool{
	"PERCENT":  true,
	"QUANTITY": true,
	"CARDINAL": true,
}

// patternRule is a fixed regex extraction rule applied to lowercased text.
type patternRule struct {
	pattern    *regexp.Regexp
	metricType string
}

var patternRules = []patternRule{
	{regexp.MustCompile(`(\d+)%.*carbon.*reduc`), "carbon_reduction"},
	{regexp.MustCompile(`(\d+)%.*renewable.*energy`), "renewable_energy"},
	{regexp.MustCompile(`(\d+)%.*waste.*reduc`), "waste_reduction"},
	{regexp.MustCompile(`(\d+)%.*water.*sav`), "water_saving"},
	{regexp.MustCompile(`net zero.*(\d{4})`), "net_zero_target"},
	{regexp.MustCompile(`carbon neutral.*(\d{4})`), "carbon_neutral_target"},
}

// ExtractMetricsFromText runs two extraction passes: entity-based (via the
// external recognizer) and pattern-based. Results are concatenated without
// deduplication; downstream consumers weigh duplicates by confidence.
func (a *Analyzer) ExtractMetricsFromText(ctx context.Context, text string) []ExtractedMetric {
	var metrics []ExtractedMetric

	metrics = append(metrics, a.extractFromEntities(ctx, text)...)
	metrics = append(metrics, extractFromPatterns(text)...)

	return metrics
}

// extractFromEntities classifies each recognized quantity entity by its
// surrounding context. Recognizer failure skips this pass only.
func (a *Analyzer) extractFromEntities(ctx context.Context, text string) []ExtractedMetric {
	if a.recognizer == nil {
		return nil
	}

	entities, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		a.log.Warn().Err(err).Msg("Entity recognition failed, falling back to pattern extraction only")
		prommetrics.RecordExternalServiceFailure("entity_recognition")
		return nil
	}

	var metrics []ExtractedMetric
	for _, ent := range entities {
		if !quantityLabels[ent.Label] {
			continue
		}

		window := contextWindow(text, ent.Start, ent.End, 50)
		metricType := classifyMetricType(strings.ToLower(window))
		if metricType == "" {
			continue
		}

		metrics = append(metrics, ExtractedMetric{
			Type:       metricType,
			Value:      ent.Text,
			Context:    window,
			Confidence: entityConfidence,
		})
	}
	return metrics
}

// classifyMetricType scans the family table in order. Within a matched
// family the most specific subtype wins only if every underscore-separated
// word of the subtype appears in the context; otherwise the family's first
// subtype is used.
func classifyMetricType(context string) string {
	for _, family := range metricFamilies {
		if !strings.Contains(context, family.keyword) {
			continue
		}
		for _, subtype := range family.subtypes {
			if containsAllWords(context, subtype) {
				return subtype
			}
		}
		return family.subtypes[0]
	}
	return ""
}

func containsAllWords(context, subtype string) bool {
	for _, word := range strings.Split(subtype, "_") {
		if !strings.Contains(context, word) {
			return false
		}
	}
	return true
}

// extractFromPatterns applies the fixed regex rules over lowercased text.
func extractFromPatterns(text string) []ExtractedMetric {
	lower := strings.ToLower(text)

	var metrics []ExtractedMetric
	for _, rule := range patternRules {
		for _, idx := range rule.pattern.FindAllStringSubmatchIndex(lower, -1) {
			// idx[0]:idx[1] is the whole match, idx[2]:idx[3] the captured value.
			metrics = append(metrics, ExtractedMetric{
				Type:       rule.metricType,
				Value:      lower[idx[2]:idx[3]],
				Context:    contextWindow(text, idx[0], idx[1], 30),
				Confidence: patternConfidence,
			})
		}
	}
	return metrics
}

// contextWindow returns text around [start,end) padded by width on each
// side, clipped to the text bounds.
func contextWindow(text string, start, end, width int) string {
	from := start - width
	if from < 0 {
		from = 0
	}
	to := end + width
	if to > len(text) {
		to = len(text)
	}
	if from > len(text) {
		from = len(text)
	}
	return text[from:to]
}
