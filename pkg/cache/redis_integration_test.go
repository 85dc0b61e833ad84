//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/cache"
	"github.com/dmitrymomot/mailforge/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip with prefix", func(t *testing.T) {
		t.Parallel()
		client := newTestRedisClient(t)
		c := cache.NewRedis[string](client, nil, cache.WithPrefix("test-roundtrip"))

		require.NoError(t, c.Set(ctx, "k", "<p>hi</p>", time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", v)

		raw, err := client.Get(ctx, "test-roundtrip:k").Result()
		require.NoError(t, err)
		assert.Equal(t, `"<p>hi</p>"`, raw)

		require.NoError(t, c.Delete(ctx, "k"))
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("default ttl", func(t *testing.T) {
		t.Parallel()
		client := newTestRedisClient(t)
		c := cache.NewRedis[string](client, nil, cache.WithPrefix("test-ttl"), cache.WithRedisDefaultTTL(time.Minute))

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		ttl, err := client.TTL(ctx, "test-ttl:k").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("unmarshal error", func(t *testing.T) {
		t.Parallel()
		client := newTestRedisClient(t)
		c := cache.NewRedis[int](client, nil, cache.WithPrefix("test-bad"))

		require.NoError(t, client.Set(ctx, "test-bad:k", "not-json", time.Minute).Err())
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrUnmarshal)
	})
}
