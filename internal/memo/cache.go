package memo

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	storedAt  time.Time
	expiresAt time.Time // zero means no expiry
}

func (e cacheEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is a concurrency-safe map with an optional time-to-live and an
// optional size cap. A zero ttl keeps entries until they are evicted; a zero
// maxEntries leaves the size unbounded. Expired entries are dropped on access
// and swept on every Set; once full, Set evicts the oldest entry.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	m          map[K]cacheEntry[V]
}

func New[K comparable, V any](ttl time.Duration, maxEntries int) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		m:          make(map[K]cacheEntry[V]),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	entry, ok := c.m[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if entry.expired(now) {
		c.mu.Lock()
		// Re-check: another goroutine may have refreshed the key.
		if cur, ok := c.m[key]; ok && cur.expired(c.now()) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.ttl > 0 {
		c.sweepLocked(now)
	}
	if _, exists := c.m[key]; !exists && c.maxEntries > 0 {
		for len(c.m) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}

	entry := cacheEntry[V]{value: value, storedAt: now}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}
	c.m[key] = entry
}

func (c *Cache[K, V]) sweepLocked(now time.Time) {
	for k, e := range c.m {
		if e.expired(now) {
			delete(c.m, k)
		}
	}
}

func (c *Cache[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.m {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(c.m, oldestKey)
	}
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Errors are returned as-is and not cached.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Len returns the number of stored entries that have not expired.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, e := range c.m {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

func (c *Cache[K, V]) stored() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
