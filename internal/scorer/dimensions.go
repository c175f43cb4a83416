package scorer

import "strings"

// Per-dimension scoring. Each dimension starts at its neutral baseline,
// takes an optional structured-metric override, then folds its ordered
// floor rules with a running maximum.

// Normalization caps for metric-derived scores: percentages top out at 100,
// absolute usage figures at 1000.
const (
	percentCap = 100.0
	usageCap   = 1000.0
)

// invertedScore maps a higher-is-worse value to a 0-100 score.
func invertedScore(value, limit float64) float64 {
	normalized := value / limit
	if normalized > 1.0 {
		normalized = 1.0
	}
	return (1.0 - normalized) * 100.0
}

// directPercentScore treats the value as a reduction percentage, capped.
func directPercentScore(value float64) float64 {
	if value > percentCap {
		return percentCap
	}
	return value
}

func (s *Scorer) carbonFootprintScore(in scoreInput) float64 {
	score := baselineNeutral
	// Higher reported carbon values are worse, so invert.
	if metric, ok := firstMetric(in.brand, "carbon"); ok {
		score = invertedScore(metric.Value, percentCap)
	}
	return applyFloors(score, s.rules.Carbon, in)
}

func (s *Scorer) waterUsageScore(in scoreInput) float64 {
	score := baselineNeutral
	if metric, ok := firstMetric(in.brand, "water"); ok {
		if strings.Contains(strings.ToLower(metric.MetricType), "reduction") {
			score = directPercentScore(metric.Value)
		} else {
			// Usage amount rather than a reduction, so invert.
			score = invertedScore(metric.Value, usageCap)
		}
	}
	return applyFloors(score, s.rules.Water, in)
}

func (s *Scorer) wasteReductionScore(in scoreInput) float64 {
	score := baselineNeutral
	if metric, ok := firstMetric(in.brand, "waste"); ok {
		if strings.Contains(strings.ToLower(metric.MetricType), "reduction") {
			score = directPercentScore(metric.Value)
		}
	}
	return applyFloors(score, s.rules.Waste, in)
}

func (s *Scorer) ethicalSourcingScore(in scoreInput) float64 {
	return applyFloors(baselineNeutral, s.rules.EthicalSourcing, in)
}

func (s *Scorer) workerRightsScore(in scoreInput) float64 {
	return applyFloors(baselineNeutral, s.rules.WorkerRights, in)
}

func (s *Scorer) communityImpactScore(in scoreInput) float64 {
	return applyFloors(baselineNeutral, s.rules.CommunityImpact, in)
}

func (s *Scorer) priceFairnessScore(in scoreInput) float64 {
	return applyFloors(baselinePriceFairness, s.rules.PriceFairness, in)
}

func (s *Scorer) durabilityScore(in scoreInput) float64 {
	return applyFloors(baselineNeutral, s.rules.Durability, in)
}

// renewableEnergyScore is estimated purely from commitment phrasing; no
// structured renewable metric feeds it.
func (s *Scorer) renewableEnergyScore(in scoreInput) float64 {
	return applyFloors(baselineNeutral, s.rules.RenewableEnergy, in)
}
