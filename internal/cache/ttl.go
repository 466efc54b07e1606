// Package cache provides an in-process TTL cache with single-flight loading.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultSweepInterval = time.Minute

type Entry[V any] struct {
	Value    V
	StoredAt time.Time
	TTL      time.Duration
}

type options struct {
	now   func() time.Time
	sweep time.Duration
}

type Option func(*options)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSweepInterval sets how often writes also drop expired entries. 0 disables sweeping.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) { o.sweep = d }
}

// TTL is safe for concurrent use. Entries are replaced whole, never mutated in place.
// Expired entries are dropped when read and, at most once per sweep interval, on write.
type TTL[V any] struct {
	mu        sync.RWMutex
	entries   map[string]Entry[V]
	ttl       time.Duration
	now       func() time.Time
	sweep     time.Duration
	lastSweep time.Time
	group     singleflight.Group
}

func New[V any](ttl time.Duration, opts ...Option) *TTL[V] {
	o := options{now: time.Now, sweep: defaultSweepInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[V]{
		entries:   make(map[string]Entry[V]),
		ttl:       ttl,
		now:       o.now,
		sweep:     o.sweep,
		lastSweep: o.now(),
	}
}

func (c *TTL[V]) IsExpired(e Entry[V]) bool {
	return expired(e, c.now())
}

func expired[V any](e Entry[V], now time.Time) bool {
	return now.Sub(e.StoredAt) > e.TTL
}

// Get drops the entry when it is past its TTL, so a stale value is never returned twice.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.IsExpired(e) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && c.IsExpired(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.Value, true
}

func (c *TTL[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

func (c *TTL[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	now := c.now()
	c.mu.Lock()
	c.entries[key] = Entry[V]{Value: value, StoredAt: now, TTL: ttl}
	if c.sweep > 0 && now.Sub(c.lastSweep) >= c.sweep {
		c.purgeLocked(now)
	}
	c.mu.Unlock()
}

// Purge drops every expired entry and returns how many were removed.
func (c *TTL[V]) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(now)
}

func (c *TTL[V]) purgeLocked(now time.Time) int {
	removed := 0
	for key, e := range c.entries {
		if expired(e, now) {
			delete(c.entries, key)
			removed++
		}
	}
	c.lastSweep = now
	return removed
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load returns the cached value or runs load once per key across concurrent callers.
// load runs detached from the caller's cancellation, so one caller giving up never fails the
// others waiting on the same key; the caller itself stops waiting when ctx is done.
// Failed loads are not cached.
func (c *TTL[V]) Load(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(V)
		if !ok {
			return zero, fmt.Errorf("cache: unexpected value type %T for key %q", res.Val, key)
		}
		return v, nil
	}
}
