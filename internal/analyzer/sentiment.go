package analyzer

import "strings"

// Sustainability-domain sentiment lexicons. Polarity is the balance of
// positive and negative term hits in [-1,1]; the analyzer floors it at 0 so
// negative phrasing reads as absence of positive sentiment rather than a
// negative signal.
var (
	positiveTerms = []string{
		"reduce", "renewable", "sustainable", "eco-friendly", "carbon neutral",
		"zero waste", "recycled", "biodegradable", "fair trade", "ethical",
		"clean energy", "green", "responsible", "conservation", "efficiency",
	}

	negativeTerms = []string{
		"pollution", "waste", "harmful", "toxic", "unsustainable",
		"deforestation", "exploitation", "child labor", "unfair",
	}
)

// sentimentScore computes the floored lexicon polarity of one commitment.
func sentimentScore(text string) float64 {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, term := range positiveTerms {
		positive += strings.Count(lower, term)
	}
	for _, term := range negativeTerms {
		negative += strings.Count(lower, term)
	}

	total := positive + negative
	if total == 0 {
		return 0.0
	}

	polarity := float64(positive-negative) / float64(total)
	if polarity < 0 {
		return 0.0
	}
	return polarity
}
