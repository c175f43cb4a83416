package mocks

import (
	"sync"

	"github.com/greenfolio/sustainability-rater/internal/models"
)

// MockBrandStore is a simple mock for the brand catalog.
type MockBrandStore struct {
	GetByIDFunc        func(id int64) (*models.Brand, error)
	GetProductByIDFunc func(id int64) (*models.Product, error)
	ListAllFunc        func() ([]models.Brand, error)
	ListProductsFunc   func(brandID int64) ([]models.Product, error)
}

func (m *MockBrandStore) GetByID(id int64) (*models.Brand, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockBrandStore) GetProductByID(id int64) (*models.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(id)
	}
	return nil, nil
}

func (m *MockBrandStore) ListAll() ([]models.Brand, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc()
	}
	return []models.Brand{}, nil
}

func (m *MockBrandStore) ListProducts(brandID int64) ([]models.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(brandID)
	}
	return []models.Product{}, nil
}

// MockRatingStore is a simple mock for the rating store. Save records every
// snapshot it receives and assigns sequential IDs so tests can inspect what
// was persisted.
type MockRatingStore struct {
	SaveFunc             func(rating *models.SustainabilityRating) error
	HistoryByProductFunc func(productID int64, limit int) ([]models.SustainabilityRating, error)
	HistoryByBrandFunc   func(brandID int64, limit int) ([]models.SustainabilityRating, error)
	HistoryRecentFunc    func(limit int) ([]models.SustainabilityRating, error)

	mu    sync.Mutex
	Saved []*models.SustainabilityRating
}

func (m *MockRatingStore) Save(rating *models.SustainabilityRating) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(rating)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rating.ID = int64(len(m.Saved) + 1)
	rating.IsCurrent = true
	m.Saved = append(m.Saved, rating)
	return nil
}

func (m *MockRatingStore) HistoryByProduct(productID int64, limit int) ([]models.SustainabilityRating, error) {
	if m.HistoryByProductFunc != nil {
		return m.HistoryByProductFunc(productID, limit)
	}
	return []models.SustainabilityRating{}, nil
}

func (m *MockRatingStore) HistoryByBrand(brandID int64, limit int) ([]models.SustainabilityRating, error) {
	if m.HistoryByBrandFunc != nil {
		return m.HistoryByBrandFunc(brandID, limit)
	}
	return []models.SustainabilityRating{}, nil
}

func (m *MockRatingStore) HistoryRecent(limit int) ([]models.SustainabilityRating, error) {
	if m.HistoryRecentFunc != nil {
		return m.HistoryRecentFunc(limit)
	}
	return []models.SustainabilityRating{}, nil
}
