package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisCache(client)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rating:current:brand:1", `{"overall_score":72}`, time.Minute))

	val, err := c.Get(ctx, "rating:current:brand:1")
	require.NoError(t, err)
	assert.Equal(t, `{"overall_score":72}`, val)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	_, c := setupCache(t)

	val, err := c.Get(context.Background(), "rating:current:brand:999")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedisCache_Expiration(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rating:current:product:5", "payload", time.Minute))
	mr.FastForward(2 * time.Minute)

	val, err := c.Get(ctx, "rating:current:product:5")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedisCache_Del(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", "v1", 0))
	require.NoError(t, c.Set(ctx, "k2", "v2", 0))
	require.NoError(t, c.Del(ctx, "k1", "k2"))
	require.NoError(t, c.Del(ctx)) // no keys is a no-op

	val, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestCurrentKeys(t *testing.T) {
	assert.Equal(t, "rating:current:brand:42", CurrentBrandKey(42))
	assert.Equal(t, "rating:current:product:7", CurrentProductKey(7))
}
