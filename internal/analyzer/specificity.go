package analyzer

import (
	"regexp"
	"strings"
)

// Specificity rewards concrete detail: figures, deadlines, action verbs and
// quantifiable outcomes. Increments are fixed; the total caps at 1.0.
var (
	percentPattern = regexp.MustCompile(`\d+%`)
	yearPattern    = regexp.MustCompile(`\d{4}`)
	digitPattern   = regexp.MustCompile(`\d+`)

	actionVerbs      = []string{"reduce", "eliminate", "achieve", "implement", "target", "commit"}
	timeframeMarkers = []string{"by", "until", "within", "before", "after"}
	outcomePhrases   = []string{"carbon neutral", "net zero", "renewable energy", "waste reduction"}
)

// specificityScore computes the rule-based specificity of one commitment.
func specificityScore(text string) float64 {
	score := 0.0
	lower := strings.ToLower(text)

	if percentPattern.MatchString(text) {
		score += 0.3
	}
	if yearPattern.MatchString(text) {
		score += 0.2
	}
	if digitPattern.MatchString(text) {
		score += 0.1
	}

	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			score += 0.1
			break
		}
	}

	for _, marker := range timeframeMarkers {
		if strings.Contains(lower, marker) {
			score += 0.2
			break
		}
	}

	// Each matched outcome phrase counts, without a break.
	for _, phrase := range outcomePhrases {
		if strings.Contains(lower, phrase) {
			score += 0.1
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
