package models

import (
	"time"

	"gorm.io/datatypes"
)

// AlgorithmVersion tags every stored snapshot with the scoring algorithm revision.
const AlgorithmVersion = "1.0"

// SustainabilityRating is an immutable rating snapshot. Only the IsCurrent
// flag transitions after insert; rows are never deleted, so the full history
// stays auditable past expiry. Partial unique indexes on the current flag
// reject a second concurrent row per target at the database level.
type SustainabilityRating struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	BrandID   int64  `gorm:"not null;index;uniqueIndex:ux_ratings_current_brand,where:is_current AND product_id IS NULL" json:"brand_id"`
	ProductID *int64 `gorm:"index;uniqueIndex:ux_ratings_current_product,where:is_current AND product_id IS NOT NULL" json:"product_id"` // nil for a brand-level rating

	OverallScore       float64 `json:"overall_score"`
	EnvironmentalScore float64 `json:"environmental_score"`
	SocialScore        float64 `json:"social_score"`
	EconomicScore      float64 `json:"economic_score"`
	CarbonFootprint    float64 `gorm:"column:carbon_footprint_score" json:"carbon_footprint_score"`
	WaterUsage         float64 `gorm:"column:water_usage_score" json:"water_usage_score"`
	WasteReduction     float64 `gorm:"column:waste_reduction_score" json:"waste_reduction_score"`
	EthicalSourcing    float64 `gorm:"column:ethical_sourcing_score" json:"ethical_sourcing_score"`
	WorkerRights       float64 `gorm:"column:worker_rights_score" json:"worker_rights_score"`
	CommunityImpact    float64 `gorm:"column:community_impact_score" json:"community_impact_score"`
	PriceFairness      float64 `gorm:"column:price_fairness_score" json:"price_fairness_score"`
	Durability         float64 `gorm:"column:durability_score" json:"durability_score"`
	ConfidenceScore    float64 `json:"confidence_score"`
	DataCompleteness   float64 `json:"data_completeness"`

	AlgorithmVersion string         `gorm:"size:20;not null" json:"algorithm_version"`
	WeightsUsed      datatypes.JSON `json:"weights_used"`     // top-level weights at calculation time
	FactorsAnalyzed  datatypes.JSON `json:"factors_analyzed"` // fixed factor list
	RawMetrics       datatypes.JSON `json:"raw_metrics"`      // opaque analyzer output

	CalculatedAt time.Time `gorm:"not null;index" json:"calculated_at"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	IsCurrent    bool      `gorm:"not null;default:false;index" json:"is_current"`
}

// TableName specifies the table name for SustainabilityRating model.
func (SustainabilityRating) TableName() string {
	return "sustainability_ratings"
}
