package martgen

import "sync"

// Cache stores generated artifacts per data set. Users with a shared
// cache (e.g. Redis) can implement this interface; MapCache is a
// process-local default. Keys are data set IDs.
type Cache interface {
	// Get retrieves the artifacts of a data set. The second return is
	// false on a miss.
	Get(key string) (*Artifacts, bool)

	// Put stores the artifacts of a data set.
	Put(key string, a *Artifacts)

	// Invalidate drops the artifacts of a data set. Call it after the
	// underlying model changed.
	Invalidate(key string)
}

// MapCache is an in-memory Cache safe for concurrent use.
type MapCache struct {
	mu      sync.RWMutex
	entries map[string]*Artifacts
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]*Artifacts)}
}

// Get implements Cache.
func (c *MapCache) Get(key string) (*Artifacts, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.entries[key]
	return a, ok
}

// Put implements Cache.
func (c *MapCache) Put(key string, a *Artifacts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = a
}

// Invalidate implements Cache.
func (c *MapCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
