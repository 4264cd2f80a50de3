package pathmatch

import (
	"github.com/jellydator/ttlcache/v3"
)

// DefaultCacheCapacity bounds the number of compiled patterns kept by NewCache(0).
const DefaultCacheCapacity = 256

type cacheKey struct {
	pattern string
	options Options
}

// Cache keeps recently compiled matchers so that render passes comparing the same route
// table do not recompile every pattern. Least recently used entries are evicted first.
type Cache struct {
	entries *ttlcache.Cache[cacheKey, *Matcher]
}

// NewCache creates a cache holding up to capacity matchers.
func NewCache(capacity uint64) *Cache {
	if capacity == 0 {
		capacity = DefaultCacheCapacity
	}

	return &Cache{
		entries: ttlcache.New[cacheKey, *Matcher](
			ttlcache.WithCapacity[cacheKey, *Matcher](capacity),
		),
	}
}

// Compile returns the cached matcher for pattern and opts, compiling it on a miss.
// Compilation errors are not cached.
func (c *Cache) Compile(pattern string, opts Options) (*Matcher, error) {
	key := cacheKey{pattern: pattern, options: opts}

	if item := c.entries.Get(key); item != nil {
		return item.Value(), nil
	}

	m, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}

	c.entries.Set(key, m, ttlcache.NoTTL)

	return m, nil
}

// Len returns the number of cached matchers.
func (c *Cache) Len() int {
	return c.entries.Len()
}
