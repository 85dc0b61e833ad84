package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache backed by patrickmn/go-cache.
type Memory[V any] struct {
	store  *gocache.Cache
	closed atomic.Bool
}

// NewMemory creates an in-memory cache. Expired entries are purged every
// cleanupInterval; a non-positive interval disables the janitor.
//
//	c := cache.NewMemory[string](10*time.Minute, time.Minute)
//	defer c.Close()
func NewMemory[V any](defaultTTL, cleanupInterval time.Duration) *Memory[V] {
	if defaultTTL == 0 {
		defaultTTL = time.Hour
	}
	return &Memory[V]{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value by key.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	raw, ok := m.store.Get(key)
	if !ok {
		return zero, ErrNotFound
	}
	v, ok := raw.(V)
	if !ok {
		return zero, ErrNotFound
	}
	return v, nil
}

// Set stores value. go-cache shares the zero/negative TTL conventions of Cache.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if ttl < 0 {
		ttl = gocache.NoExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes a key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.store.Delete(key)
	return nil
}

// Len returns the number of stored items, including expired ones not yet purged.
func (m *Memory[V]) Len() int {
	return m.store.ItemCount()
}

// Close drops all entries and rejects further writes. Close is idempotent.
func (m *Memory[V]) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.store.Flush()
	}
	return nil
}

var _ Cache[any] = (*Memory[any])(nil)
