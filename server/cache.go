package server

import (
	"crypto/sha256"
	"sync"

	"github.com/GriffinCanCode/iconoglott/diag"
)

// renderCache memoizes compile results keyed by a hash of the source.
// Repeated renders of identical documents, common when a client
// reconnects or several clients edit the same scene, skip the pipeline
// entirely. When the cache is full the oldest entry is evicted (FIFO).
type renderCache struct {
	mu        sync.RWMutex
	entries   map[string]cachedRender
	order     []string
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

type cachedRender struct {
	svg  string
	errs diag.List
}

// newRenderCache creates a cache holding up to maxSize documents.
// A maxSize of 0 disables bounding.
func newRenderCache(maxSize int) *renderCache {
	return &renderCache{
		entries: make(map[string]cachedRender),
		maxSize: maxSize,
	}
}

func hashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return string(sum[:])
}

// Get retrieves a cached render, reporting whether it was present.
func (c *renderCache) Get(source string) (cachedRender, bool) {
	key := hashSource(source)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	return entry, ok
}

// Put stores a render result, evicting the oldest entry at capacity.
func (c *renderCache) Put(source, svg string, errs diag.List) {
	key := hashSource(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.evictions++
	}
	c.entries[key] = cachedRender{svg: svg, errs: errs}
	c.order = append(c.order, key)
}

// Stats reports hit/miss/eviction counters.
func (c *renderCache) Stats() (hits, misses, evictions int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, c.evictions
}

// Len reports the number of cached documents.
func (c *renderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
