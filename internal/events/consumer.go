package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	prommetrics "github.com/greenfolio/sustainability-rater/internal/metrics"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// BrandUpdate is the payload announced when a brand's sustainability data
// changes upstream.
type BrandUpdate struct {
	BrandID int64 `json:"brand_id"`
}

// BrandUpdateHandler reacts to brand data changes.
type BrandUpdateHandler interface {
	HandleBrandDataUpdated(ctx context.Context, brandID int64)
}

// Consumer subscribes to brand update notifications and triggers
// recalculation through the handler.
type Consumer struct {
	client  *redis.Client
	channel string
	handler BrandUpdateHandler
	log     *logger.Logger
	done    chan struct{}
}

// NewConsumer creates a consumer for the given channel.
func NewConsumer(client *redis.Client, channel string, handler BrandUpdateHandler, log *logger.Logger) *Consumer {
	return &Consumer{
		client:  client,
		channel: channel,
		handler: handler,
		log:     log.Component("event_consumer"),
		done:    make(chan struct{}),
	}
}

// Start subscribes and processes messages until the context is cancelled.
// It blocks until the subscription is established, then processes in the
// background.
func (c *Consumer) Start(ctx context.Context) error {
	sub := c.client.Subscribe(ctx, c.channel)

	// Receive forces the SUBSCRIBE round trip so a bad connection fails fast.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	c.log.Info().Str("channel", c.channel).Msg("Subscribed to brand update events")

	go func() {
		defer close(c.done)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				c.handleMessage(ctx, msg.Payload)
			}
		}
	}()

	return nil
}

// Wait blocks until the consumer loop has exited.
func (c *Consumer) Wait() {
	<-c.done
}

func (c *Consumer) handleMessage(ctx context.Context, payload string) {
	var update BrandUpdate
	if err := json.Unmarshal([]byte(payload), &update); err != nil {
		prommetrics.RecordEventConsumed("error")
		c.log.Warn().Err(err).Str("payload", payload).Msg("Failed to decode brand update event")
		return
	}

	if update.BrandID == 0 {
		prommetrics.RecordEventConsumed("error")
		c.log.Warn().Str("payload", payload).Msg("Brand update event missing brand_id")
		return
	}

	prommetrics.RecordEventConsumed("success")
	c.handler.HandleBrandDataUpdated(ctx, update.BrandID)
}
