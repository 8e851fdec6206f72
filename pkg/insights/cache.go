package insights

import (
	"sync"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/logger"
)

// Cache is a TTL cache for computed insights, keyed by feature and product.
type Cache struct {
	mu       sync.RWMutex
	cache    map[cacheKey]cacheEntry
	cacheTTL time.Duration
}

type cacheKey struct {
	feature   logger.Feature
	productID string
}

type cacheEntry struct {
	value      any
	expiration time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		cache:    make(map[cacheKey]cacheEntry),
		cacheTTL: ttl,
	}
}

// Get returns the cached insight for a feature/product pair if present and
// not expired.
func (c *Cache) Get(feature logger.Feature, productID string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.cache[cacheKey{feature, productID}]
	if !found || time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.value, true
}

// Set stores an insight for a feature/product pair.
func (c *Cache) Set(feature logger.Feature, productID string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[cacheKey{feature, productID}] = cacheEntry{
		value:      value,
		expiration: time.Now().Add(c.cacheTTL),
	}
}

// Clear removes all cached insights.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[cacheKey]cacheEntry)
}

// cacheGet is a typed wrapper around Get.
func cacheGet[T any](c *Cache, feature logger.Feature, productID string) (T, bool) {
	var zero T
	v, found := c.Get(feature, productID)
	if !found {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
