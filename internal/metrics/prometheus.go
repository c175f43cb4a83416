// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the sustainability rating engine.
var (
	// Counters.
	RatingsCalculatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_calculated_total",
			Help: "Total number of rating calculations",
		},
		[]string{"target", "status"},
	)

	ExternalServiceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_service_failures_total",
			Help: "Total failures of external collaborators recovered with neutral defaults",
		},
		[]string{"service"},
	)

	BatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_batch_runs_total",
			Help: "Total full-recalculation batch executions",
		},
		[]string{"status"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_events_published_total",
			Help: "Total rating_calculated notifications published",
		},
		[]string{"status"},
	)

	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_events_consumed_total",
			Help: "Total inbound brand update events consumed",
		},
		[]string{"status"},
	)

	// Gauges.
	BatchLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rating_batch_last_run_timestamp",
			Help: "Unix timestamp of the last full recalculation run",
		},
	)

	BatchErrorCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rating_batch_error_count",
			Help: "Number of per-target errors in the last full recalculation",
		},
	)

	// Histograms.
	CalculationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rating_calculation_duration_seconds",
			Help:    "Time taken for a single rating calculation",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"target"},
	)

	BatchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rating_batch_duration_seconds",
			Help:    "Time taken for a full recalculation run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s to ~17min
		},
	)
)

// RecordRatingCalculated records a rating calculation outcome. Target is
// "brand" or "product".
func RecordRatingCalculated(target, status string) {
	RatingsCalculatedTotal.WithLabelValues(target, status).Inc()
}

// RecordExternalServiceFailure records a recovered external collaborator failure.
func RecordExternalServiceFailure(service string) {
	ExternalServiceFailuresTotal.WithLabelValues(service).Inc()
}

// RecordBatchRun records a batch recalculation execution.
func RecordBatchRun(status string) {
	BatchRunsTotal.WithLabelValues(status).Inc()
}

// RecordEventPublished records a notification publish attempt.
func RecordEventPublished(status string) {
	EventsPublishedTotal.WithLabelValues(status).Inc()
}

// RecordEventConsumed records an inbound event consumption.
func RecordEventConsumed(status string) {
	EventsConsumedTotal.WithLabelValues(status).Inc()
}

// SetBatchLastRun sets the timestamp of the last batch run.
func SetBatchLastRun() {
	BatchLastRunTimestamp.SetToCurrentTime()
}

// SetBatchErrorCount sets the per-target error count of the last batch run.
func SetBatchErrorCount(count int) {
	BatchErrorCount.Set(float64(count))
}

// ObserveCalculationDuration observes a single calculation's duration.
func ObserveCalculationDuration(target string, seconds float64) {
	CalculationDurationSeconds.WithLabelValues(target).Observe(seconds)
}

// ObserveBatchDuration observes a batch run's duration.
func ObserveBatchDuration(seconds float64) {
	BatchDurationSeconds.Observe(seconds)
}
