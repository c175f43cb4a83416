package scorer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleSource names the evidence a floor rule inspects.
type ruleSource string

const (
	sourceCertifications ruleSource = "certifications"
	sourceCommitments    ruleSource = "commitments"
	sourceProductSpecs   ruleSource = "product_specs"
)

// FloorRule raises a dimension score to Floor when any of Terms matches the
// rule's source. Rules are evaluated in order and folded with a running
// maximum, so a score never decreases from rule application.
type FloorRule struct {
	Source ruleSource `yaml:"source"`
	Terms  []string   `yaml:"terms"`
	Floor  float64    `yaml:"floor"`
}

// RuleSet holds the ordered floor rules for every dimension. The built-in
// tables are the authoritative defaults; a yaml file can override them for
// audit experiments.
type RuleSet struct {
	Carbon          []FloorRule `yaml:"carbon"`
	Water           []FloorRule `yaml:"water"`
	Waste           []FloorRule `yaml:"waste"`
	EthicalSourcing []FloorRule `yaml:"ethical_sourcing"`
	WorkerRights    []FloorRule `yaml:"worker_rights"`
	CommunityImpact []FloorRule `yaml:"community_impact"`
	PriceFairness   []FloorRule `yaml:"price_fairness"`
	Durability      []FloorRule `yaml:"durability"`
	RenewableEnergy []FloorRule `yaml:"renewable_energy"`
}

// DefaultRuleSet returns the built-in dimension rule tables.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Carbon: []FloorRule{
			{Source: sourceCertifications, Terms: []string{"carbon trust", "climate neutral", "carbon neutral"}, Floor: 80},
			{Source: sourceCommitments, Terms: []string{"carbon neutral", "net zero", "carbon negative"}, Floor: 75},
		},
		Water: []FloorRule{
			{Source: sourceCommitments, Terms: []string{"water conservation", "water efficiency", "water saving"}, Floor: 70},
		},
		Waste: []FloorRule{
			{Source: sourceCommitments, Terms: []string{"zero waste"}, Floor: 85},
			{Source: sourceCommitments, Terms: []string{"waste reduction", "circular economy", "recycling"}, Floor: 70},
		},
		EthicalSourcing: []FloorRule{
			{Source: sourceCertifications, Terms: []string{"fair trade", "rainforest alliance", "b-corp", "b corporation"}, Floor: 85},
			{Source: sourceCommitments, Terms: []string{"ethical sourcing", "supply chain transparency", "fair trade"}, Floor: 75},
		},
		WorkerRights: []FloorRule{
			{Source: sourceCommitments, Terms: []string{"worker rights", "fair labor", "living wage", "safe working conditions"}, Floor: 75},
			{Source: sourceCertifications, Terms: []string{"b-corp", "b corporation"}, Floor: 80},
		},
		CommunityImpact: []FloorRule{
			{Source: sourceCommitments, Terms: []string{"community", "local", "social impact", "giving back"}, Floor: 70},
		},
		PriceFairness: []FloorRule{
			{Source: sourceCertifications, Terms: []string{"fair trade"}, Floor: 80},
		},
		Durability: []FloorRule{
			{Source: sourceProductSpecs, Terms: []string{"warranty", "durable", "lifetime", "quality"}, Floor: 70},
			{Source: sourceCommitments, Terms: []string{"quality", "durable", "long-lasting", "lifetime"}, Floor: 65},
		},
		RenewableEnergy: []FloorRule{
			{Source: sourceCommitments, Terms: []string{"100% renewable", "renewable energy", "solar power", "wind energy"}, Floor: 80},
			{Source: sourceCommitments, Terms: []string{"renewable"}, Floor: 70},
		},
	}
}

// LoadRuleSet reads a rule table override file. Dimensions absent from the
// file keep their built-in rules.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override RuleSet
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := DefaultRuleSet()
	mergeRules(rules, &override)
	return rules, nil
}

func mergeRules(base, override *RuleSet) {
	if len(override.Carbon) > 0 {
		base.Carbon = override.Carbon
	}
	if len(override.Water) > 0 {
		base.Water = override.Water
	}
	if len(override.Waste) > 0 {
		base.Waste = override.Waste
	}
	if len(override.EthicalSourcing) > 0 {
		base.EthicalSourcing = override.EthicalSourcing
	}
	if len(override.WorkerRights) > 0 {
		base.WorkerRights = override.WorkerRights
	}
	if len(override.CommunityImpact) > 0 {
		base.CommunityImpact = override.CommunityImpact
	}
	if len(override.PriceFairness) > 0 {
		base.PriceFairness = override.PriceFairness
	}
	if len(override.Durability) > 0 {
		base.Durability = override.Durability
	}
	if len(override.RenewableEnergy) > 0 {
		base.RenewableEnergy = override.RenewableEnergy
	}
}
