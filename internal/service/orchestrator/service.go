// Package orchestrator coordinates the rating pipeline: it loads brand data,
// runs the text analysis, computes component scores, persists the snapshot
// and announces the result.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/greenfolio/sustainability-rater/internal/analyzer"
	"github.com/greenfolio/sustainability-rater/internal/cache"
	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/internal/events"
	prommetrics "github.com/greenfolio/sustainability-rater/internal/metrics"
	"github.com/greenfolio/sustainability-rater/internal/models"
	"github.com/greenfolio/sustainability-rater/internal/repository"
	"github.com/greenfolio/sustainability-rater/internal/scorer"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// factorsAnalyzed is recorded verbatim on every snapshot.
var factorsAnalyzed = []string{"environmental", "social", "economic"}

// BrandStore provides brand catalog access.
type BrandStore interface {
	GetByID(id int64) (*models.Brand, error)
	GetProductByID(id int64) (*models.Product, error)
	ListAll() ([]models.Brand, error)
	ListProducts(brandID int64) ([]models.Product, error)
}

// RatingStore persists and lists rating snapshots.
type RatingStore interface {
	Save(rating *models.SustainabilityRating) error
	HistoryByProduct(productID int64, limit int) ([]models.SustainabilityRating, error)
	HistoryByBrand(brandID int64, limit int) ([]models.SustainabilityRating, error)
	HistoryRecent(limit int) ([]models.SustainabilityRating, error)
}

// CommitmentAnalyzer scores commitment text.
type CommitmentAnalyzer interface {
	AnalyzeCommitmentQuality(ctx context.Context, commitments []string) analyzer.Analysis
}

// ComponentScorer computes rating components from brand data.
type ComponentScorer interface {
	CalculateComprehensiveScore(brand *models.Brand, product *models.Product, analysis *analyzer.Analysis) scorer.Components
}

// NotificationPublisher announces stored ratings. May be nil when the
// message bus is not configured.
type NotificationPublisher interface {
	RatingCalculated(ctx context.Context, n events.Notification) error
}

// Service is the rating orchestrator. Weights are the only mutable state and
// are guarded by mu.
type Service struct {
	brands    BrandStore
	ratings   RatingStore
	analyzer  CommitmentAnalyzer
	scorer    ComponentScorer
	publisher NotificationPublisher
	cache     cache.Cache

	mu      sync.RWMutex
	weights scorer.Weights

	expiry   time.Duration
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService creates the orchestrator with the repository-backed stores.
func NewService(
	brandRepo *repository.BrandRepository,
	ratingRepo *repository.RatingRepository,
	commitmentAnalyzer *analyzer.Analyzer,
	componentScorer *scorer.Scorer,
	publisher *events.Publisher,
	headlineCache cache.Cache,
	cfg *config.RatingConfig,
	log *logger.Logger,
) *Service {
	var pub NotificationPublisher
	if publisher != nil {
		pub = publisher
	}
	return NewServiceWithInterfaces(brandRepo, ratingRepo, commitmentAnalyzer, componentScorer, pub, headlineCache, cfg, log)
}

// NewServiceWithInterfaces creates the orchestrator with explicit interfaces.
// Used by tests to inject mocks.
func NewServiceWithInterfaces(
	brands BrandStore,
	ratings RatingStore,
	commitmentAnalyzer CommitmentAnalyzer,
	componentScorer ComponentScorer,
	publisher NotificationPublisher,
	headlineCache cache.Cache,
	cfg *config.RatingConfig,
	log *logger.Logger,
) *Service {
	weights := scorer.Weights{
		Environmental: cfg.Weights.Environmental,
		Social:        cfg.Weights.Social,
		Economic:      cfg.Weights.Economic,
	}
	if weights.Sum() <= 0 {
		weights = scorer.DefaultWeights()
	}

	expiry := time.Duration(cfg.ExpiryDays) * 24 * time.Hour
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = expiry
	}

	return &Service{
		brands:    brands,
		ratings:   ratings,
		analyzer:  commitmentAnalyzer,
		scorer:    componentScorer,
		publisher: publisher,
		cache:     headlineCache,
		weights:   weights.Normalized(),
		expiry:    expiry,
		cacheTTL:  cacheTTL,
		log:       log.Component("rating_orchestrator"),
	}
}

// CalculateRating runs the full pipeline for one target. A malformed request
// is reported through the error; every downstream failure, including
// persistence, comes back as a failure result so batch callers can keep
// going.
func (s *Service) CalculateRating(ctx context.Context, req CalculateRatingRequest) (CalculateRatingResult, error) {
	if req.BrandID == 0 {
		return CalculateRatingResult{}, fmt.Errorf("brand_id is required")
	}

	target := "brand"
	if req.ProductID != nil {
		target = "product"
	}
	start := time.Now()

	brand, err := s.brands.GetByID(req.BrandID)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			prommetrics.RecordRatingCalculated(target, "not_found")
			return CalculateRatingResult{Success: false, Error: "Brand not found"}, nil
		}
		prommetrics.RecordRatingCalculated(target, "error")
		return CalculateRatingResult{Success: false, Error: err.Error()}, nil
	}

	var product *models.Product
	if req.ProductID != nil {
		product, err = s.brands.GetProductByID(*req.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				prommetrics.RecordRatingCalculated(target, "not_found")
				return CalculateRatingResult{Success: false, Error: "Product not found"}, nil
			}
			prommetrics.RecordRatingCalculated(target, "error")
			return CalculateRatingResult{Success: false, Error: err.Error()}, nil
		}
	}

	var analysis *analyzer.Analysis
	if commitments := brand.CommitmentList(); len(commitments) > 0 {
		a := s.analyzer.AnalyzeCommitmentQuality(ctx, commitments)
		analysis = &a
	}

	components := s.scorer.CalculateComprehensiveScore(brand, product, analysis)

	s.mu.RLock()
	weights := s.weights
	s.mu.RUnlock()
	overall := weights.Overall(components)

	snapshot, err := s.buildSnapshot(req, weights, components, overall, analysis)
	if err != nil {
		prommetrics.RecordRatingCalculated(target, "error")
		return CalculateRatingResult{Success: false, Error: err.Error()}, nil
	}

	if err := s.ratings.Save(snapshot); err != nil {
		s.log.Error().Err(err).
			Int64("brand_id", req.BrandID).
			Msg("Failed to persist rating snapshot")
		prommetrics.RecordRatingCalculated(target, "error")
		return CalculateRatingResult{Success: false, Error: err.Error()}, nil
	}

	// Notify and cache only after the snapshot is durable. Neither failing
	// invalidates the calculation.
	s.announce(ctx, snapshot)
	s.refreshCache(ctx, snapshot)

	prommetrics.RecordRatingCalculated(target, "success")
	prommetrics.ObserveCalculationDuration(target, time.Since(start).Seconds())

	s.log.Info().
		Int64("brand_id", req.BrandID).
		Int64("rating_id", snapshot.ID).
		Float64("overall_score", snapshot.OverallScore).
		Str("target", target).
		Msg("Rating calculated")

	return CalculateRatingResult{
		Success:            true,
		RatingID:           snapshot.ID,
		OverallScore:       snapshot.OverallScore,
		EnvironmentalScore: snapshot.EnvironmentalScore,
		SocialScore:        snapshot.SocialScore,
		EconomicScore:      snapshot.EconomicScore,
		ConfidenceScore:    snapshot.ConfidenceScore,
		DataCompleteness:   snapshot.DataCompleteness,
	}, nil
}

func (s *Service) buildSnapshot(req CalculateRatingRequest, weights scorer.Weights, c scorer.Components, overall float64, analysis *analyzer.Analysis) (*models.SustainabilityRating, error) {
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weights: %w", err)
	}
	factorsJSON, err := json.Marshal(factorsAnalyzed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode factors: %w", err)
	}

	raw := map[string]any{}
	if analysis != nil {
		raw["nlp_analysis"] = analysis
	}
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw metrics: %w", err)
	}

	now := time.Now().UTC()
	return &models.SustainabilityRating{
		BrandID:            req.BrandID,
		ProductID:          req.ProductID,
		OverallScore:       overall,
		EnvironmentalScore: c.Environmental,
		SocialScore:        c.Social,
		EconomicScore:      c.Economic,
		CarbonFootprint:    c.CarbonFootprint,
		WaterUsage:         c.WaterUsage,
		WasteReduction:     c.WasteReduction,
		EthicalSourcing:    c.EthicalSourcing,
		WorkerRights:       c.WorkerRights,
		CommunityImpact:    c.CommunityImpact,
		PriceFairness:      c.PriceFairness,
		Durability:         c.Durability,
		ConfidenceScore:    c.Confidence,
		DataCompleteness:   c.DataCompleteness,
		AlgorithmVersion:   models.AlgorithmVersion,
		WeightsUsed:        weightsJSON,
		FactorsAnalyzed:    factorsJSON,
		RawMetrics:         rawJSON,
		CalculatedAt:       now,
		ExpiresAt:          now.Add(s.expiry),
	}, nil
}

func (s *Service) announce(ctx context.Context, snapshot *models.SustainabilityRating) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.RatingCalculated(ctx, events.Notification{
		RatingID:        snapshot.ID,
		BrandID:         snapshot.BrandID,
		ProductID:       snapshot.ProductID,
		OverallScore:    snapshot.OverallScore,
		ConfidenceScore: snapshot.ConfidenceScore,
		CalculatedAt:    snapshot.CalculatedAt,
	})
	if err != nil {
		s.log.Warn().Err(err).
			Int64("rating_id", snapshot.ID).
			Msg("Failed to publish rating notification")
	}
}

func (s *Service) refreshCache(ctx context.Context, snapshot *models.SustainabilityRating) {
	if s.cache == nil {
		return
	}

	key := cache.CurrentBrandKey(snapshot.BrandID)
	if snapshot.ProductID != nil {
		key = cache.CurrentProductKey(*snapshot.ProductID)
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode rating for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache current rating")
	}
}

// RecalculateAllRatings walks the whole catalog and recalculates a rating
// for every brand and every product. One failed target never aborts the run.
func (s *Service) RecalculateAllRatings(ctx context.Context) RecalculateAllResult {
	start := time.Now()

	brands, err := s.brands.ListAll()
	if err != nil {
		prommetrics.RecordBatchRun("error")
		return RecalculateAllResult{Success: false, Error: err.Error()}
	}

	result := RecalculateAllResult{Success: true, TotalBrands: len(brands)}

	for i := range brands {
		brand := &brands[i]

		res, err := s.CalculateRating(ctx, CalculateRatingRequest{BrandID: brand.ID})
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("Brand %d: %v", brand.ID, err))
		case !res.Success:
			result.Errors = append(result.Errors, fmt.Sprintf("Brand %d: %s", brand.ID, res.Error))
		default:
			result.CalculatedRatings++
		}

		products, err := s.brands.ListProducts(brand.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Brand %d: %v", brand.ID, err))
			continue
		}

		for j := range products {
			product := &products[j]
			productID := product.ID

			res, err := s.CalculateRating(ctx, CalculateRatingRequest{BrandID: brand.ID, ProductID: &productID})
			switch {
			case err != nil:
				result.Errors = append(result.Errors, fmt.Sprintf("Product %d: %v", product.ID, err))
			case !res.Success:
				result.Errors = append(result.Errors, fmt.Sprintf("Product %d: %s", product.ID, res.Error))
			default:
				result.CalculatedRatings++
			}
		}
	}

	prommetrics.RecordBatchRun("success")
	prommetrics.SetBatchLastRun()
	prommetrics.SetBatchErrorCount(len(result.Errors))
	prommetrics.ObserveBatchDuration(time.Since(start).Seconds())

	s.log.Info().
		Int("total_brands", result.TotalBrands).
		Int("calculated_ratings", result.CalculatedRatings).
		Int("errors", len(result.Errors)).
		Msg("Batch recalculation finished")

	return result
}

// HandleBrandDataUpdated refreshes the brand-level rating after an upstream
// data change. Failures are logged, never propagated to the event loop.
func (s *Service) HandleBrandDataUpdated(ctx context.Context, brandID int64) {
	s.log.Info().Int64("brand_id", brandID).Msg("Brand data updated, recalculating rating")

	res, err := s.CalculateRating(ctx, CalculateRatingRequest{BrandID: brandID})
	if err != nil {
		s.log.Error().Err(err).Int64("brand_id", brandID).Msg("Failed to recalculate rating for updated brand")
		return
	}
	if !res.Success {
		s.log.Warn().
			Int64("brand_id", brandID).
			Str("error", res.Error).
			Msg("Recalculation for updated brand did not succeed")
	}
}

// GetRatingHistory lists stored snapshots, newest first. A product filter
// wins over a brand filter; with neither, recent snapshots across all
// targets are returned.
func (s *Service) GetRatingHistory(ctx context.Context, req HistoryRequest) HistoryResult {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	var (
		ratings []models.SustainabilityRating
		err     error
	)
	switch {
	case req.ProductID != nil:
		ratings, err = s.ratings.HistoryByProduct(*req.ProductID, limit)
	case req.BrandID != nil:
		ratings, err = s.ratings.HistoryByBrand(*req.BrandID, limit)
	default:
		ratings, err = s.ratings.HistoryRecent(limit)
	}
	if err != nil {
		return HistoryResult{Success: false, Error: err.Error()}
	}

	history := make([]HistoryEntry, 0, len(ratings))
	for _, r := range ratings {
		history = append(history, HistoryEntry{
			RatingID:           r.ID,
			BrandID:            r.BrandID,
			ProductID:          r.ProductID,
			OverallScore:       r.OverallScore,
			EnvironmentalScore: r.EnvironmentalScore,
			SocialScore:        r.SocialScore,
			EconomicScore:      r.EconomicScore,
			ConfidenceScore:    r.ConfidenceScore,
			AlgorithmVersion:   r.AlgorithmVersion,
			CalculatedAt:       r.CalculatedAt,
			ExpiresAt:          r.ExpiresAt,
			IsCurrent:          r.IsCurrent,
		})
	}

	return HistoryResult{Success: true, History: history}
}

// UpdateRatingWeights merges the provided weight overrides into the current
// weights and renormalizes so they sum to 1. Only calculations started after
// the update observe the new weights.
func (s *Service) UpdateRatingWeights(req UpdateWeightsRequest) UpdateWeightsResult {
	s.mu.Lock()
	if req.Environmental != nil {
		s.weights.Environmental = *req.Environmental
	}
	if req.Social != nil {
		s.weights.Social = *req.Social
	}
	if req.Economic != nil {
		s.weights.Economic = *req.Economic
	}
	s.weights = s.weights.Normalized()
	weights := s.weights
	s.mu.Unlock()

	s.log.Info().
		Float64("environmental", weights.Environmental).
		Float64("social", weights.Social).
		Float64("economic", weights.Economic).
		Msg("Rating weights updated")

	return UpdateWeightsResult{
		Success:       true,
		Environmental: weights.Environmental,
		Social:        weights.Social,
		Economic:      weights.Economic,
	}
}

// Weights returns the weights currently in effect.
func (s *Service) Weights() scorer.Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}
