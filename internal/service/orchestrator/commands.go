package orchestrator

import (
	"context"
	"fmt"
	"time"
)

// Command is implemented by every orchestrator request type. Callers build a
// concrete command and hand it to Dispatch; the set of commands is closed.
type Command interface {
	isCommand()
}

// CalculateRatingRequest asks for a fresh rating of a brand or, when
// ProductID is set, of a single product.
type CalculateRatingRequest struct {
	BrandID   int64  `json:"brand_id"`
	ProductID *int64 `json:"product_id,omitempty"`
}

func (CalculateRatingRequest) isCommand() {}

// CalculateRatingResult reports the outcome of a single rating calculation.
type CalculateRatingResult struct {
	Success            bool    `json:"success"`
	Error              string  `json:"error,omitempty"`
	RatingID           int64   `json:"rating_id,omitempty"`
	OverallScore       float64 `json:"overall_score"`
	EnvironmentalScore float64 `json:"environmental_score"`
	SocialScore        float64 `json:"social_score"`
	EconomicScore      float64 `json:"economic_score"`
	ConfidenceScore    float64 `json:"confidence_score"`
	DataCompleteness   float64 `json:"data_completeness"`
}

// RecalculateAllRequest asks for a batch recalculation over every brand and
// every product in the catalog.
type RecalculateAllRequest struct{}

func (RecalculateAllRequest) isCommand() {}

// RecalculateAllResult summarizes a batch run. Errors holds one entry per
// failed target; failures never abort the rest of the batch.
type RecalculateAllResult struct {
	Success           bool     `json:"success"`
	Error             string   `json:"error,omitempty"`
	TotalBrands       int      `json:"total_brands"`
	CalculatedRatings int      `json:"calculated_ratings"`
	Errors            []string `json:"errors,omitempty"`
}

// BrandDataUpdated signals that a brand's sustainability data changed and its
// rating should be refreshed.
type BrandDataUpdated struct {
	BrandID int64 `json:"brand_id"`
}

func (BrandDataUpdated) isCommand() {}

// HistoryRequest asks for stored rating snapshots. ProductID takes precedence
// over BrandID when both are set; with neither, the most recent snapshots
// across all targets are returned.
type HistoryRequest struct {
	BrandID   *int64 `json:"brand_id,omitempty"`
	ProductID *int64 `json:"product_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

func (HistoryRequest) isCommand() {}

// HistoryEntry is one snapshot in a history listing.
type HistoryEntry struct {
	RatingID           int64     `json:"rating_id"`
	BrandID            int64     `json:"brand_id"`
	ProductID          *int64    `json:"product_id,omitempty"`
	OverallScore       float64   `json:"overall_score"`
	EnvironmentalScore float64   `json:"environmental_score"`
	SocialScore        float64   `json:"social_score"`
	EconomicScore      float64   `json:"economic_score"`
	ConfidenceScore    float64   `json:"confidence_score"`
	AlgorithmVersion   string    `json:"algorithm_version"`
	CalculatedAt       time.Time `json:"calculated_at"`
	ExpiresAt          time.Time `json:"expires_at"`
	IsCurrent          bool      `json:"is_current"`
}

// HistoryResult carries a history listing, newest first.
type HistoryResult struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	History []HistoryEntry `json:"history"`
}

// UpdateWeightsRequest adjusts the top-level category weights. Nil fields
// keep their current value; the merged weights are renormalized to sum to 1.
type UpdateWeightsRequest struct {
	Environmental *float64 `json:"environmental,omitempty"`
	Social        *float64 `json:"social,omitempty"`
	Economic      *float64 `json:"economic,omitempty"`
}

func (UpdateWeightsRequest) isCommand() {}

// UpdateWeightsResult returns the weights now in effect.
type UpdateWeightsResult struct {
	Success       bool    `json:"success"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Economic      float64 `json:"economic"`
}

// Dispatch routes a command to its operation. Unknown command types are a
// programming error and return an error rather than a failure result.
func (s *Service) Dispatch(ctx context.Context, cmd Command) (any, error) {
	switch c := cmd.(type) {
	case CalculateRatingRequest:
		return s.CalculateRating(ctx, c)
	case RecalculateAllRequest:
		return s.RecalculateAllRatings(ctx), nil
	case BrandDataUpdated:
		s.HandleBrandDataUpdated(ctx, c.BrandID)
		return nil, nil
	case HistoryRequest:
		return s.GetRatingHistory(ctx, c), nil
	case UpdateWeightsRequest:
		return s.UpdateRatingWeights(c), nil
	default:
		return nil, fmt.Errorf("unsupported command type %T", cmd)
	}
}
