package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/greenfolio/sustainability-rater/internal/models"
)

// Sentinel errors for missing entities. Callers translate these into
// structured failure results rather than letting them escape the operation
// boundary.
var (
	ErrBrandNotFound   = errors.New("brand not found")
	ErrProductNotFound = errors.New("product not found")
)

// BrandRepository handles brand and product database operations.
type BrandRepository struct {
	db *DB
}

// NewBrandRepository creates a new brand repository.
func NewBrandRepository(db *DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// GetByID retrieves a brand with its metrics by ID.
func (r *BrandRepository) GetByID(id int64) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.Preload("Metrics").First(&brand, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand %d: %w", id, err)
	}
	return &brand, nil
}

// GetProductByID retrieves a product by ID.
func (r *BrandRepository) GetProductByID(id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// ListAll retrieves every known brand with its metrics.
func (r *BrandRepository) ListAll() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Preload("Metrics").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// ListProducts retrieves all products belonging to a brand.
func (r *BrandRepository) ListProducts(brandID int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("brand_id = ?", brandID).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for brand %d: %w", brandID, err)
	}
	return products, nil
}
