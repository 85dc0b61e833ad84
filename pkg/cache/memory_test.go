package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "k", "<p>hi</p>", 0))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)

		_, err := c.Get(ctx, "nope")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)

		require.NoError(t, c.Set(ctx, "k", "v", 20*time.Millisecond))
		require.Eventually(t, func() bool {
			_, err := c.Get(ctx, "k")
			return errors.Is(err, cache.ErrNotFound)
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Millisecond, 0)

		require.NoError(t, c.Set(ctx, "k", "v", -1))
		time.Sleep(5 * time.Millisecond)
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 0)

		require.NoError(t, c.Set(ctx, "k", 1, 0))
		require.NoError(t, c.Delete(ctx, "k"))
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("closed rejects writes", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, time.Minute)

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(ctx, "k", "v", 0), cache.ErrClosed)
		require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("computes once then hits", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		var calls atomic.Int32
		fn := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "html", 0, nil
		}

		v, hit, err := cache.GetOrSet(ctx, c, "getorset-once", fn)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "html", v)

		v, hit, err = cache.GetOrSet(ctx, c, "getorset-once", fn)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "html", v)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		boom := errors.New("render failed")

		_, _, err := cache.GetOrSet(ctx, c, "getorset-err", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "getorset-err")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("concurrent misses share one call", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		var calls atomic.Int32
		release := make(chan struct{})

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, _, err := cache.GetOrSet(ctx, c, "getorset-concurrent", func(context.Context) (string, time.Duration, error) {
					calls.Add(1)
					<-release
					return "shared", 0, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, "shared", v)
			}()
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.LessOrEqual(t, calls.Load(), int32(2))
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	a := cache.Key("preview", []byte("ab"), []byte("c"))
	b := cache.Key("preview", []byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cache.Key("preview", []byte("ab"), []byte("c")))
	assert.Regexp(t, `^preview:[0-9a-f]{64}$`, a)
}
