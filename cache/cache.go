// Package cache provides the time-boxed page cache for rendered
// listing pages.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const maxEntries = 128

// PageCache stores rendered page output keyed by route. Entries expire
// after a fixed TTL. There is deliberately no invalidation hook tied to
// data mutation: a deleted post stays visible in a cached page until
// the entry expires or Clear is called.
type PageCache struct {
	lru *expirable.LRU[string, []byte]
	ttl time.Duration
}

// NewPageCache returns a PageCache whose entries live for ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		lru: expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the cached output for key, or ok=false when the key is
// absent or expired.
func (c *PageCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores output under key, replacing any previous entry.
func (c *PageCache) Set(key string, value []byte) {
	c.lru.Add(key, value)
}

// Clear drops all entries.
func (c *PageCache) Clear() {
	c.lru.Purge()
}

// TTL reports the configured entry lifetime.
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}
