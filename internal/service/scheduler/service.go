// Package scheduler runs the periodic batch recalculation so stored ratings
// are refreshed before they expire.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/internal/service/orchestrator"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// Recalculator is the batch operation the scheduler drives.
type Recalculator interface {
	RecalculateAllRatings(ctx context.Context) orchestrator.RecalculateAllResult
}

// Service handles periodic rating recalculation.
type Service struct {
	config       *config.SchedulerConfig
	recalculator Recalculator
	log          *logger.Logger
	cron         *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(cfg *config.SchedulerConfig, recalculator Recalculator, log *logger.Logger) *Service {
	return &Service{
		config:       cfg,
		recalculator: recalculator,
		log:          log.Component("scheduler"),
	}
}

// Start initializes and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	location, err := time.LoadLocation(s.config.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(location))

	_, err = s.cron.AddFunc(s.config.Cron, func() {
		s.runRecalculation(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to register recalculation job: %w", err)
	}

	s.cron.Start()

	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("schedule", s.config.Cron).
		Str("timezone", s.config.Timezone).
		Str("next_run", nextRun).
		Msg("Scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

// runRecalculation executes the batch recalculation job.
func (s *Service) runRecalculation(ctx context.Context) {
	start := time.Now()
	s.log.Info().Msg("Running scheduled rating recalculation")

	result := s.recalculator.RecalculateAllRatings(ctx)
	if !result.Success {
		s.log.Error().
			Str("error", result.Error).
			Dur("duration", time.Since(start)).
			Msg("Scheduled recalculation failed")
		return
	}

	s.log.Info().
		Int("total_brands", result.TotalBrands).
		Int("calculated_ratings", result.CalculatedRatings).
		Int("errors", len(result.Errors)).
		Dur("duration", time.Since(start)).
		Msg("Scheduled recalculation completed")
}
