// Package scorer computes multi-factor sustainability scores from brand and
// product attributes combined with commitment analysis signals.
package scorer

import (
	"strings"

	"github.com/greenfolio/sustainability-rater/internal/analyzer"
	"github.com/greenfolio/sustainability-rater/internal/models"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// Neutral baselines. Every dimension starts here and only structured
// metrics, certifications or commitment phrases move it.
const (
	baselineNeutral       = 50.0
	baselinePriceFairness = 60.0
)

// Components holds every sub-score of one calculation, on a 0-100 scale,
// plus confidence and completeness on a 0-1 scale. Components are transient;
// the orchestrator folds them into a persisted snapshot.
type Components struct {
	Environmental    float64
	Social           float64
	Economic         float64
	CarbonFootprint  float64
	WaterUsage       float64
	WasteReduction   float64
	EthicalSourcing  float64
	WorkerRights     float64
	CommunityImpact  float64
	PriceFairness    float64
	Durability       float64
	Confidence       float64
	DataCompleteness float64
}

// Scorer computes rating components. Rule tables are fixed at construction.
type Scorer struct {
	rules *RuleSet
	log   *logger.Logger
}

// New creates a scorer with the given rule tables; nil uses the defaults.
func New(rules *RuleSet, log *logger.Logger) *Scorer {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Scorer{rules: rules, log: log}
}

// scoreInput is the preprocessed view of one calculation target.
type scoreInput struct {
	brand       *models.Brand
	product     *models.Product
	certs       []string // lowercased certification names
	commitments string   // lowercased joined commitment text
	specs       string   // lowercased product specifications text
}

func buildInput(brand *models.Brand, product *models.Product) scoreInput {
	in := scoreInput{brand: brand, product: product}

	for _, cert := range brand.CertificationList() {
		in.certs = append(in.certs, strings.ToLower(cert))
	}
	in.commitments = strings.ToLower(strings.Join(brand.CommitmentList(), " "))
	if product != nil && jsonPresent(product.Specifications) {
		in.specs = strings.ToLower(string(product.Specifications))
	}

	return in
}

// CalculateComprehensiveScore computes all dimension scores, the three
// category aggregates and the confidence/completeness estimates for a brand
// and optional product. The analysis argument may be nil when the brand has
// no commitments.
func (s *Scorer) CalculateComprehensiveScore(brand *models.Brand, product *models.Product, analysis *analyzer.Analysis) Components {
	in := buildInput(brand, product)

	c := Components{
		CarbonFootprint: s.carbonFootprintScore(in),
		WaterUsage:      s.waterUsageScore(in),
		WasteReduction:  s.wasteReductionScore(in),
		EthicalSourcing: s.ethicalSourcingScore(in),
		WorkerRights:    s.workerRightsScore(in),
		CommunityImpact: s.communityImpactScore(in),
		PriceFairness:   s.priceFairnessScore(in),
		Durability:      s.durabilityScore(in),
	}

	c.Environmental = weightedCategory([]weightedScore{
		{c.CarbonFootprint, environmentalWeights["carbon_footprint"]},
		{c.WaterUsage, environmentalWeights["water_usage"]},
		{c.WasteReduction, environmentalWeights["waste_reduction"]},
		{s.renewableEnergyScore(in), environmentalWeights["renewable_energy"]},
	})
	c.Social = weightedCategory([]weightedScore{
		{c.EthicalSourcing, socialWeights["ethical_sourcing"]},
		{c.WorkerRights, socialWeights["worker_rights"]},
		{c.CommunityImpact, socialWeights["community_impact"]},
	})
	c.Economic = weightedCategory([]weightedScore{
		{c.PriceFairness, economicWeights["price_fairness"]},
		{c.Durability, economicWeights["durability"]},
	})

	c.Confidence = confidenceScore(brand, analysis)
	c.DataCompleteness = dataCompleteness(brand, product)

	return c
}

type weightedScore struct {
	score  float64
	weight float64
}

// weightedCategory aggregates sub-scores normalized to [0,1] under their
// weights, scales back to 0-100 and clamps. Zero applicable weight defaults
// to the neutral baseline.
func weightedCategory(scores []weightedScore) float64 {
	var totalWeight, sum float64
	for _, ws := range scores {
		sum += (ws.score / 100.0) * ws.weight
		totalWeight += ws.weight
	}
	if totalWeight <= 0 {
		return baselineNeutral
	}
	return clamp(sum/totalWeight*100.0, 0, 100)
}

// applyFloors folds the rule list with a running maximum.
func applyFloors(score float64, rules []FloorRule, in scoreInput) float64 {
	for _, rule := range rules {
		if rule.matches(in) && rule.Floor > score {
			score = rule.Floor
		}
	}
	return score
}

func (r FloorRule) matches(in scoreInput) bool {
	switch r.Source {
	case sourceCertifications:
		for _, cert := range in.certs {
			for _, term := range r.Terms {
				if strings.Contains(cert, term) {
					return true
				}
			}
		}
	case sourceCommitments:
		for _, term := range r.Terms {
			if strings.Contains(in.commitments, term) {
				return true
			}
		}
	case sourceProductSpecs:
		for _, term := range r.Terms {
			if strings.Contains(in.specs, term) {
				return true
			}
		}
	}
	return false
}

// firstMetric returns the brand's first metric whose type contains the
// keyword. Metric order follows insertion order, matching upstream data.
func firstMetric(brand *models.Brand, keyword string) (models.SustainabilityMetric, bool) {
	for _, metric := range brand.Metrics {
		if strings.Contains(strings.ToLower(metric.MetricType), keyword) {
			return metric, true
		}
	}
	return models.SustainabilityMetric{}, false
}

// confidenceScore estimates rating reliability from data volume and quality.
func confidenceScore(brand *models.Brand, analysis *analyzer.Analysis) float64 {
	confidence := brand.DataQualityScore * 0.3

	certCount := len(brand.CertificationList())
	confidence += capAt(float64(certCount)*0.1, 0.3)

	confidence += capAt(float64(len(brand.Metrics))*0.05, 0.2)

	if analysis != nil {
		confidence += analysis.Quality * 0.2
	}

	return clamp(confidence, 0, 1)
}

// Completeness indicator weights per expected data field.
const (
	completenessDescription    = 0.1
	completenessCommitments    = 0.2
	completenessCertifications = 0.2
	completenessMetrics        = 0.3
	completenessProductDesc    = 0.05
	completenessSpecifications = 0.1
	completenessMaterials      = 0.05
)

// dataCompleteness measures the fraction of expected data fields present.
func dataCompleteness(brand *models.Brand, product *models.Product) float64 {
	completeness := 0.0

	if brand.Description != "" {
		completeness += completenessDescription
	}
	if len(brand.CommitmentList()) > 0 {
		completeness += completenessCommitments
	}
	if len(brand.CertificationList()) > 0 {
		completeness += completenessCertifications
	}
	if len(brand.Metrics) > 0 {
		completeness += completenessMetrics
	}

	if product != nil {
		if product.Description != "" {
			completeness += completenessProductDesc
		}
		if jsonPresent(product.Specifications) {
			completeness += completenessSpecifications
		}
		if jsonPresent(product.Materials) {
			completeness += completenessMaterials
		}
	}

	return clamp(completeness, 0, 1)
}

func jsonPresent(raw []byte) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "{}", "[]":
		return false
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
