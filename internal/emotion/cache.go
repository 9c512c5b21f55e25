package emotion

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// Cache stores classification results keyed by content hash. It is
// injected rather than ambient so tests can substitute a deterministic
// or disabled cache. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (domain.EmotionLabel, bool)
	Add(key string, label domain.EmotionLabel)
}

// LRUCache is a bounded, TTL-expiring classification cache.
type LRUCache struct {
	lru *expirable.LRU[string, domain.EmotionLabel]
}

var _ Cache = (*LRUCache)(nil)

// NewLRUCache creates a cache holding up to size entries, each fresh
// for ttl after insertion.
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		lru: expirable.NewLRU[string, domain.EmotionLabel](size, nil, ttl),
	}
}

func (c *LRUCache) Get(key string) (domain.EmotionLabel, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache) Add(key string, label domain.EmotionLabel) {
	c.lru.Add(key, label)
}

// NullCache disables caching.
type NullCache struct{}

var _ Cache = NullCache{}

func (NullCache) Get(_ string) (domain.EmotionLabel, bool) { return domain.EmotionLabel{}, false }
func (NullCache) Add(_ string, _ domain.EmotionLabel)      {}
