package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/greenfolio/sustainability-rater/internal/models"
)

// RatingRepository handles rating snapshot persistence. Snapshots are
// append-only; the only mutation ever applied to a stored row is clearing
// its is_current flag when a newer snapshot supersedes it.
type RatingRepository struct {
	db *DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Save clears the current flag on any prior snapshot for the same target and
// inserts the new snapshot marked current, in one transaction. The target is
// the product when rating.ProductID is set, otherwise the brand itself.
// Two transactions racing on the same target cannot both commit a current
// row: the partial unique indexes on sustainability_ratings fail the later
// insert, and the whole transaction rolls back for the caller to retry.
func (r *RatingRepository) Save(rating *models.SustainabilityRating) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		supersede := tx.Model(&models.SustainabilityRating{}).Where("is_current = ?", true)
		if rating.ProductID != nil {
			supersede = supersede.Where("product_id = ?", *rating.ProductID)
		} else {
			supersede = supersede.Where("brand_id = ? AND product_id IS NULL", rating.BrandID)
		}
		if err := supersede.Update("is_current", false).Error; err != nil {
			return err
		}

		rating.IsCurrent = true
		return tx.Create(rating).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save rating snapshot: %w", err)
	}
	return nil
}

// GetCurrentByProduct retrieves the current snapshot for a product.
func (r *RatingRepository) GetCurrentByProduct(productID int64) (*models.SustainabilityRating, error) {
	var rating models.SustainabilityRating
	err := r.db.Where("product_id = ? AND is_current = ?", productID, true).First(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current rating for product %d: %w", productID, err)
	}
	return &rating, nil
}

// HistoryByProduct lists a product's snapshots, newest first.
func (r *RatingRepository) HistoryByProduct(productID int64, limit int) ([]models.SustainabilityRating, error) {
	var ratings []models.SustainabilityRating
	err := r.db.Where("product_id = ?", productID).
		Order("calculated_at DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating history for product %d: %w", productID, err)
	}
	return ratings, nil
}

// HistoryByBrand lists snapshots for all products of a brand, newest first.
// The lookup joins through the brand's products, matching the upstream
// consumers' expectation that brand history covers product ratings.
func (r *RatingRepository) HistoryByBrand(brandID int64, limit int) ([]models.SustainabilityRating, error) {
	var ratings []models.SustainabilityRating
	err := r.db.
		Joins("JOIN products ON products.id = sustainability_ratings.product_id").
		Where("products.brand_id = ?", brandID).
		Order("sustainability_ratings.calculated_at DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating history for brand %d: %w", brandID, err)
	}
	return ratings, nil
}

// HistoryRecent lists the most recent snapshots across all targets.
func (r *RatingRepository) HistoryRecent(limit int) ([]models.SustainabilityRating, error) {
	var ratings []models.SustainabilityRating
	err := r.db.Order("calculated_at DESC").Limit(limit).Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent rating history: %w", err)
	}
	return ratings, nil
}

// CountByTarget counts stored snapshots for a target. Used by operational
// checks and tests.
func (r *RatingRepository) CountByTarget(brandID int64, productID *int64) (int64, error) {
	var count int64
	q := r.db.Model(&models.SustainabilityRating{})
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	} else {
		q = q.Where("brand_id = ? AND product_id IS NULL", brandID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rating snapshots: %w", err)
	}
	return count, nil
}
