package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

type recordingHandler struct {
	updates chan int64
}

func (h *recordingHandler) HandleBrandDataUpdated(_ context.Context, brandID int64) {
	h.updates <- brandID
}

func TestPublisher_RatingCalculated(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "ratings.calculated")
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	defer sub.Close()

	p := NewPublisher(client, "ratings.calculated", logger.Nop())
	productID := int64(7)
	err = p.RatingCalculated(ctx, Notification{
		RatingID:        3,
		BrandID:         42,
		ProductID:       &productID,
		OverallScore:    71.5,
		ConfidenceScore: 0.6,
		CalculatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var got Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, int64(3), got.RatingID)
		assert.Equal(t, int64(42), got.BrandID)
		require.NotNil(t, got.ProductID)
		assert.Equal(t, int64(7), *got.ProductID)
		assert.Equal(t, 71.5, got.OverallScore)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published notification")
	}
}

func TestConsumer_HandlesBrandUpdate(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := &recordingHandler{updates: make(chan int64, 1)}
	c := NewConsumer(client, "brands.updated", handler, logger.Nop())
	require.NoError(t, c.Start(ctx))

	err := client.Publish(ctx, "brands.updated", `{"brand_id": 42}`).Err()
	require.NoError(t, err)

	select {
	case brandID := <-handler.updates:
		assert.Equal(t, int64(42), brandID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for brand update")
	}

	cancel()
	c.Wait()
}

func TestConsumer_IgnoresMalformedPayloads(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := &recordingHandler{updates: make(chan int64, 1)}
	c := NewConsumer(client, "brands.updated", handler, logger.Nop())
	require.NoError(t, c.Start(ctx))

	require.NoError(t, client.Publish(ctx, "brands.updated", "not json").Err())
	require.NoError(t, client.Publish(ctx, "brands.updated", `{"brand_id": 0}`).Err())
	require.NoError(t, client.Publish(ctx, "brands.updated", `{"brand_id": 9}`).Err())

	select {
	case brandID := <-handler.updates:
		// Only the well-formed update reaches the handler.
		assert.Equal(t, int64(9), brandID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for brand update")
	}

	cancel()
	c.Wait()
}
