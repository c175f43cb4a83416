// Package events publishes and consumes rating lifecycle notifications over
// Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	prommetrics "github.com/greenfolio/sustainability-rater/internal/metrics"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// Notification carries the headline of a freshly calculated rating.
type Notification struct {
	RatingID        int64     `json:"rating_id"`
	BrandID         int64     `json:"brand_id"`
	ProductID       *int64    `json:"product_id,omitempty"`
	OverallScore    float64   `json:"overall_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	CalculatedAt    time.Time `json:"calculated_at"`
}

// Publisher publishes rating notifications to a Redis channel.
type Publisher struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// NewPublisher creates a publisher for the given channel.
func NewPublisher(client *redis.Client, channel string, log *logger.Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		log:     log.Component("event_publisher"),
	}
}

// RatingCalculated publishes a notification for a stored rating snapshot.
func (p *Publisher) RatingCalculated(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		prommetrics.RecordEventPublished("error")
		return fmt.Errorf("failed to marshal rating notification: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		prommetrics.RecordEventPublished("error")
		return fmt.Errorf("failed to publish rating notification: %w", err)
	}

	prommetrics.RecordEventPublished("success")
	p.log.Debug().
		Int64("rating_id", n.RatingID).
		Int64("brand_id", n.BrandID).
		Str("channel", p.channel).
		Msg("Published rating notification")

	return nil
}
