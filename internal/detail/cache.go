package detail

import (
	"sync"
)

// DefaultCacheSize bounds the detail cache when no capacity is configured.
const DefaultCacheSize = 256

// Cache memoizes detail-page results by URL for the lifetime of a run.
// It is safe for concurrent use by the enrichment workers; a lookup racing a
// fetch degrades at worst to one duplicate fetch for that URL. The cache is
// capacity-bounded with oldest-first eviction so very long runs cannot grow
// it without limit.
type Cache struct {
	mu       sync.Mutex
	capacity int
	results  map[string]*Result
	order    []string // insertion order, oldest first
}

// NewCache creates a cache holding at most capacity entries. A non-positive
// capacity falls back to DefaultCacheSize.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		results:  make(map[string]*Result),
	}
}

// Get retrieves a memoized result for url
func (c *Cache) Get(url string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.results[url]
	return result, ok
}

// Set stores a result for url, evicting the oldest entry when full
func (c *Cache) Set(url string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.results[url]; !exists {
		for len(c.results) >= c.capacity && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.results, oldest)
		}
		c.order = append(c.order, url)
	}
	c.results[url] = result
}

// Size returns the number of cached entries
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}
