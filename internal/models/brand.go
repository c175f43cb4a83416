// Package models defines domain models for the sustainability rating system.
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Brand represents a brand whose sustainability posture is rated.
type Brand struct {
	ID                        int64                  `gorm:"primaryKey" json:"id"`
	Name                      string                 `gorm:"size:255;not null" json:"name"`
	Description               string                 `gorm:"type:text" json:"description"`
	Certifications            datatypes.JSON         `json:"certifications"`             // array of certification names
	SustainabilityCommitments datatypes.JSON         `json:"sustainability_commitments"` // array of strings, or {"commitments": [...]}
	DataQualityScore          float64                `gorm:"default:0" json:"data_quality_score"`
	Metrics                   []SustainabilityMetric `gorm:"foreignKey:BrandID" json:"metrics,omitempty"`
	Products                  []Product              `gorm:"foreignKey:BrandID" json:"products,omitempty"`
	CreatedAt                 time.Time              `json:"created_at"`
	UpdatedAt                 time.Time              `json:"updated_at"`
}

// TableName specifies the table name for Brand model.
func (Brand) TableName() string {
	return "brands"
}

// CertificationList decodes the certifications column into a string slice.
// Malformed or empty payloads yield nil.
func (b *Brand) CertificationList() []string {
	if len(b.Certifications) == 0 {
		return nil
	}
	var certs []string
	if err := json.Unmarshal(b.Certifications, &certs); err != nil {
		return nil
	}
	return certs
}

// CommitmentList decodes the sustainability commitments column. The upstream
// collector writes either a bare array of strings or an object holding a
// "commitments" array; both shapes are accepted.
func (b *Brand) CommitmentList() []string {
	if len(b.SustainabilityCommitments) == 0 {
		return nil
	}

	var direct []string
	if err := json.Unmarshal(b.SustainabilityCommitments, &direct); err == nil {
		return direct
	}

	var wrapped struct {
		Commitments []string `json:"commitments"`
	}
	if err := json.Unmarshal(b.SustainabilityCommitments, &wrapped); err == nil {
		return wrapped.Commitments
	}
	return nil
}

// Product represents a product owned by a brand.
type Product struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	BrandID        int64          `gorm:"not null;index" json:"brand_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Specifications datatypes.JSON `json:"specifications"` // free-form attribute map
	Materials      datatypes.JSON `json:"materials"`      // array of material names
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// SustainabilityMetric represents a single quantitative metric reported for a brand.
type SustainabilityMetric struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BrandID    int64     `gorm:"not null;index" json:"brand_id"`
	MetricType string    `gorm:"size:100;not null" json:"metric_type"` // e.g. "carbon_reduction"
	Value      float64   `gorm:"not null" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for SustainabilityMetric model.
func (SustainabilityMetric) TableName() string {
	return "sustainability_metrics"
}
