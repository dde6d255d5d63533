package registry

import (
	"sync"
	"time"

	"github.com/rafters-ui/rafters/internal/types"
)

// componentCache is a bounded, TTL-based cache of fetched components.
// Eviction at the size cap removes the oldest entry by insertion order;
// expired entries are swept lazily before each lookup rather than by a
// background timer. Entries are never mutated after insertion, only
// replaced or evicted wholesale.
type componentCache struct {
	mutex   sync.Mutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration

	hits   int64
	misses int64
}

type cacheEntry struct {
	component *types.RegistryComponent
	createdAt time.Time
}

// CacheStats summarizes cache effectiveness for introspection.
type CacheStats struct {
	Entries int
	MaxSize int
	TTL     time.Duration
	Hits    int64
	Misses  int64
}

func newComponentCache(maxSize int, ttl time.Duration) *componentCache {
	return &componentCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get returns the cached component for name, if present and unexpired.
func (c *componentCache) Get(name string) (*types.RegistryComponent, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.sweepLocked()

	entry, exists := c.entries[name]
	if !exists {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.component, true
}

// Set inserts a component, evicting the oldest entry first when the cache is
// at its size cap.
func (c *componentCache) Set(name string, component *types.RegistryComponent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[name]; exists {
		c.removeFromOrderLocked(name)
	} else if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[name] = &cacheEntry{component: component, createdAt: time.Now()}
	c.order = append(c.order, name)
}

// Clear removes the named entries, or every entry when no names are given.
func (c *componentCache) Clear(names ...string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(names) == 0 {
		c.entries = make(map[string]*cacheEntry)
		c.order = nil
		return
	}
	for _, name := range names {
		if _, exists := c.entries[name]; exists {
			delete(c.entries, name)
			c.removeFromOrderLocked(name)
		}
	}
}

// Stats returns a snapshot of the cache counters.
func (c *componentCache) Stats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return CacheStats{
		Entries: len(c.entries),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

func (c *componentCache) sweepLocked() {
	if len(c.entries) == 0 {
		return
	}
	now := time.Now()
	for name, entry := range c.entries {
		if now.Sub(entry.createdAt) > c.ttl {
			delete(c.entries, name)
			c.removeFromOrderLocked(name)
		}
	}
}

func (c *componentCache) removeFromOrderLocked(name string) {
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
