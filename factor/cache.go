package factor

import (
	"math/big"
	"sync"
)

// Cache memoises factorizations keyed by the decimal representation of the
// factored integer. Implementations must be safe for concurrent use.
type Cache interface {
	Load(key string) ([]Factor, bool)
	Store(key string, factors []Factor)
}

// MapCache is an unbounded Cache guarded by a read-write mutex. Entries are
// never evicted.
type MapCache struct {
	mu      sync.RWMutex
	entries map[string][]Factor
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string][]Factor)}
}

func (c *MapCache) Load(key string) ([]Factor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return cloneFactors(f), true
}

func (c *MapCache) Store(key string, factors []Factor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cloneFactors(factors)
}

// Len returns the number of cached factorizations.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Load(string) ([]Factor, bool) { return nil, false }
func (NopCache) Store(string, []Factor)       {}

func cloneFactors(factors []Factor) []Factor {
	res := make([]Factor, len(factors))
	for i, f := range factors {
		res[i] = Factor{Base: new(big.Int).Set(f.Base), Exponent: f.Exponent}
	}
	return res
}
