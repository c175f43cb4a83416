package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/internal/service/orchestrator"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

type mockRecalculator struct {
	calls  int
	result orchestrator.RecalculateAllResult
}

func (m *mockRecalculator) RecalculateAllRatings(_ context.Context) orchestrator.RecalculateAllResult {
	m.calls++
	return m.result
}

func TestStart_Disabled(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: false}
	s := NewService(cfg, &mockRecalculator{}, logger.Nop())

	require.NoError(t, s.Start())
	assert.Nil(t, s.cron)
	s.Stop()
}

func TestStart_InvalidTimezone(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, Cron: "0 3 * * *", Timezone: "Mars/Olympus"}
	s := NewService(cfg, &mockRecalculator{}, logger.Nop())

	assert.Error(t, s.Start())
}

func TestStart_InvalidCronExpression(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, Cron: "not a schedule", Timezone: "UTC"}
	s := NewService(cfg, &mockRecalculator{}, logger.Nop())

	assert.Error(t, s.Start())
}

func TestStart_RegistersJob(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, Cron: "0 3 * * *", Timezone: "UTC"}
	s := NewService(cfg, &mockRecalculator{}, logger.Nop())

	require.NoError(t, s.Start())
	defer s.Stop()

	require.NotNil(t, s.cron)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunRecalculation(t *testing.T) {
	recalc := &mockRecalculator{
		result: orchestrator.RecalculateAllResult{
			Success:           true,
			TotalBrands:       3,
			CalculatedRatings: 5,
		},
	}
	s := NewService(&config.SchedulerConfig{}, recalc, logger.Nop())

	s.runRecalculation(context.Background())
	assert.Equal(t, 1, recalc.calls)
}

func TestRunRecalculation_Failure(t *testing.T) {
	recalc := &mockRecalculator{
		result: orchestrator.RecalculateAllResult{Success: false, Error: "db offline"},
	}
	s := NewService(&config.SchedulerConfig{}, recalc, logger.Nop())

	s.runRecalculation(context.Background())
	assert.Equal(t, 1, recalc.calls)
}
