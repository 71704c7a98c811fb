package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"statboard-service/internal/metrics"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache keeps keyed snapshots in memory until they expire or are invalidated.
// Concurrent loads of the same key share a single upstream call.
type TTLCache[T any] struct {
	name    string
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Recorder

	mu      sync.RWMutex
	entries map[string]entry[T]
	group   singleflight.Group
}

// NewTTLCache constructs an empty cache. A non-positive ttl keeps entries until invalidated.
func NewTTLCache[T any](name string, ttl time.Duration, recorder *metrics.Recorder) *TTLCache[T] {
	return &TTLCache[T]{
		name:    name,
		ttl:     ttl,
		now:     time.Now,
		metrics: recorder,
		entries: make(map[string]entry[T]),
	}
}

// Name returns the cache name used in metrics.
func (c *TTLCache[T]) Name() string {
	return c.name
}

// Get returns a live entry for key.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.expired(e) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && c.expired(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		ok = false
	}
	c.metrics.RecordCacheLookup(c.name, ok)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous snapshot.
func (c *TTLCache[T]) Set(key string, value T) {
	e := entry[T]{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Invalidate drops the entry for key.
func (c *TTLCache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every entry and returns how many were removed.
func (c *TTLCache[T]) InvalidateAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entry[T])
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrLoad returns the cached value for key or populates it with load.
// Failed loads are not cached.
func (c *TTLCache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	return c.Refresh(ctx, key, load)
}

// Refresh loads key unconditionally and stores the result on success.
// The shared load runs detached from the caller's cancellation so one
// departing caller cannot fail the others; each caller still stops waiting
// when its own ctx ends. Loads are bounded by the upstream client timeout.
func (c *TTLCache[T]) Refresh(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *TTLCache[T]) expired(e entry[T]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}
