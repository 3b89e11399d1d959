package weight

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
)

// DefaultCacheSize bounds how many derived models are kept. Populations
// change rarely (reloads), so a handful is plenty.
const DefaultCacheSize = 8

// Cache memoizes derived models keyed by snapshot content hash, so repeated
// diagnoses against an unchanged universe skip the frequency scan.
type Cache struct {
	models *lru.Cache[string, *Model]
}

// NewCache creates a model cache. Sizes below 1 fall back to
// DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	models, err := lru.New[string, *Model](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Cache{models: models}
}

// For returns the model for a snapshot, deriving and caching it on miss.
func (c *Cache) For(snap *kb.Snapshot) *Model {
	if m, ok := c.models.Get(snap.Hash()); ok {
		return m
	}
	m := NewModel(snap)
	c.models.Add(snap.Hash(), m)
	return m
}

// Len reports how many models are cached.
func (c *Cache) Len() int {
	return c.models.Len()
}
