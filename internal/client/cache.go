package client

import (
	"sync"
	"sync/atomic"
	"time"
)

// profileCache is a TTL cache for fetched profiles, keyed by query key
// (see profileKey). It gives repeat profile views without a round trip,
// while Invalidate lets a successful update force the next read to hit
// the server for fresh data.
//
// WHY NOT UPDATE THE CACHE DIRECTLY ON WRITE?
// Invalidation is deliberately the only write-path interaction: the server
// response already carries the canonical record, but dropping the entry
// and re-fetching keeps one code path for "what's in the cache" and makes
// a stale entry impossible even if a concurrent fetch raced the update.
type profileCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	maxSize int

	// counters, read with atomic loads for Stats
	hits   int64
	misses int64
}

type cacheEntry struct {
	value    any
	cachedAt time.Time
}

// CacheStats are simple counters for diagnostics.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

func newProfileCache(ttl time.Duration, maxSize int) *profileCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if maxSize == 0 {
		maxSize = 500
	}
	return &profileCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// get returns the cached value, or nil and false on a miss. An expired
// entry counts as a miss; it is left in place and overwritten by the next
// set, which avoids lock upgrades on the read path.
func (c *profileCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.cachedAt) > c.ttl {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return entry.value, true
}

func (c *profileCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full: drop an arbitrary entry. The cache is
	// small and entries are cheap to refetch, so LRU isn't worth it here.
	if len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}

	c.entries[key] = &cacheEntry{value: value, cachedAt: time.Now()}
}

// invalidate removes a single entry. Removing an absent key is a no-op.
func (c *profileCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// clear empties the cache, e.g. on logout.
func (c *profileCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *profileCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports cache counters.
func (c *profileCache) stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Size:   c.len(),
	}
}
