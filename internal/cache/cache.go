// Package cache provides an in-process TTL memo cache for geocoding and
// lead-search results. A single instance is constructed at bootstrap and
// injected into the components that need it; there is no ambient global.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL key/value memo store. Values are held by reference;
// callers must treat returned values as immutable.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// Option configures the cache.
type Option func(*Cache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a Cache with the given default TTL.
func New(defaultTTL time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are evicted lazily here.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have raced.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL, overriding the default.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeping evicts expired entries every interval until ctx is done.
func (c *Cache) StartSweeping(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n := c.sweep()
				if n > 0 {
					zap.L().Debug("cache sweep", zap.Int("evicted", n))
				}
			}
		}
	}()
}

func (c *Cache) sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	var evicted int
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}
