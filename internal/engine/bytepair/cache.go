package bytepair

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes PerformBPE results by segment bytes, mirroring the
// teacher's llama3/cache.go bpeCache interface.
type Cache interface {
	Get(key string) ([]uint32, bool)
	Put(key string, value []uint32)
}

// boundedCache wraps hashicorp/golang-lru/v2 for the common case of a
// fixed-capacity cache, replacing the teacher's hand-rolled
// container/list-based LRU (the pack's arloliu-mebo repo already reaches
// for this library for the same purpose).
type boundedCache struct {
	inner *lru.Cache[string, []uint32]
}

// NewBounded creates a Cache with a fixed capacity. capacity must be > 0.
func NewBounded(capacity int) Cache {
	c, _ := lru.New[string, []uint32](capacity)
	return &boundedCache{inner: c}
}

func (c *boundedCache) Get(key string) ([]uint32, bool) { return c.inner.Get(key) }
func (c *boundedCache) Put(key string, value []uint32)  { c.inner.Add(key, value) }

// unboundedCache is a plain mutex-guarded map, kept for cacheSize==0 exactly
// as the teacher's llama3/cache.go simpleCache does ("unlimited caching").
type unboundedCache struct {
	mu    sync.RWMutex
	cache map[string][]uint32
}

// NewUnbounded creates a Cache with no eviction.
func NewUnbounded() Cache {
	return &unboundedCache{cache: make(map[string][]uint32)}
}

func (c *unboundedCache) Get(key string) ([]uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cache[key]
	return v, ok
}

func (c *unboundedCache) Put(key string, value []uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = value
}
