package services

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Default TTLs for the two process-lifetime caches.
const (
	DefaultResultCacheTTL     = 30 * time.Minute
	DefaultEnrichmentCacheTTL = 60 * time.Minute
)

type cacheEntry[V any] struct {
	value      V
	insertedAt time.Time
}

// ttlCache is a TTL-keyed store with lazy read-time expiry. Values are
// immutable once constructed, so read-check-then-write races cost at
// worst a redundant recomputation, never corrupted data.
type ttlCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

func newTTLCache[V any](ttl time.Duration) *ttlCache[V] {
	return &ttlCache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// Get returns the stored value, or false once the entry is older than
// the TTL. Expired entries are evicted on read; no background sweep.
func (c *ttlCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Put stores a value under the key, resetting its TTL window.
func (c *ttlCache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[V]{value: value, insertedAt: c.now()}
}

// Clear empties the cache immediately.
func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[V])
}

// Len returns the live entry count, including not-yet-evicted expired
// entries.
func (c *ttlCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// hashKey derives a fixed-length cache key from a canonical
// serialization.
func hashKey(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
