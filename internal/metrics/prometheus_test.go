package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRatingCalculated(t *testing.T) {
	// Reset the counter before test
	RatingsCalculatedTotal.Reset()

	RecordRatingCalculated("brand", "success")
	RecordRatingCalculated("brand", "success")
	RecordRatingCalculated("product", "not_found")

	count := testutil.ToFloat64(RatingsCalculatedTotal.WithLabelValues("brand", "success"))
	if count != 2 {
		t.Errorf("Expected brand success count = 2, got %f", count)
	}

	count = testutil.ToFloat64(RatingsCalculatedTotal.WithLabelValues("product", "not_found"))
	if count != 1 {
		t.Errorf("Expected product not_found count = 1, got %f", count)
	}
}

func TestRecordExternalServiceFailure(t *testing.T) {
	// Reset the counter before test
	ExternalServiceFailuresTotal.Reset()

	RecordExternalServiceFailure("language_model")
	RecordExternalServiceFailure("language_model")
	RecordExternalServiceFailure("entity_recognition")

	count := testutil.ToFloat64(ExternalServiceFailuresTotal.WithLabelValues("language_model"))
	if count != 2 {
		t.Errorf("Expected language_model failure count = 2, got %f", count)
	}
}

func TestRecordBatchRun(t *testing.T) {
	// Reset the counter before test
	BatchRunsTotal.Reset()

	RecordBatchRun("success")
	RecordBatchRun("error")

	count := testutil.ToFloat64(BatchRunsTotal.WithLabelValues("success"))
	if count != 1 {
		t.Errorf("Expected success batch run count = 1, got %f", count)
	}
}

func TestRecordEvents(t *testing.T) {
	// Reset the counters before test
	EventsPublishedTotal.Reset()
	EventsConsumedTotal.Reset()

	RecordEventPublished("success")
	RecordEventConsumed("error")

	if count := testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("success")); count != 1 {
		t.Errorf("Expected published count = 1, got %f", count)
	}
	if count := testutil.ToFloat64(EventsConsumedTotal.WithLabelValues("error")); count != 1 {
		t.Errorf("Expected consumed error count = 1, got %f", count)
	}
}

func TestBatchGauges(t *testing.T) {
	SetBatchErrorCount(7)
	if got := testutil.ToFloat64(BatchErrorCount); got != 7 {
		t.Errorf("Expected batch error count = 7, got %f", got)
	}

	SetBatchLastRun()
	if got := testutil.ToFloat64(BatchLastRunTimestamp); got <= 0 {
		t.Errorf("Expected last run timestamp > 0, got %f", got)
	}
}
