package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/versolabs/verso/internal/model"
)

// Category tags a cache entry with the kind of result it holds. Each
// category carries its own TTL policy.
type Category string

const (
	CategoryExpansion       Category = "expansion"
	CategoryFacts           Category = "facts"
	CategoryRecommendations Category = "recommendations"
	CategoryRelated         Category = "related"
	CategoryTrending        Category = "trending"
)

// Backend is a flat key-value store with per-entry TTL.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a stable cache key from its parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "verso:v1:" + hex.EncodeToString(hash[:])
}

// Store is the result cache: category-aware Get/Set over a Backend with
// per-category TTLs. A nil Store behaves as a permanent miss, so every
// pipeline path works with the cache entirely unavailable.
type Store struct {
	backend Backend
	ttls    map[Category]time.Duration
}

// NewStore builds a Store from the cache configuration. Returns nil when
// caching is disabled; callers treat that as cache-off.
func NewStore(cfg model.CacheConfig) *Store {
	if !cfg.Enabled {
		return nil
	}

	ttls := map[Category]time.Duration{
		CategoryExpansion:       cfg.ExpansionTTL,
		CategoryFacts:           cfg.FactsTTL,
		CategoryRecommendations: cfg.RecommendationsTTL,
		CategoryRelated:         cfg.RelatedTTL,
		CategoryTrending:        cfg.TrendingTTL,
	}

	var backend Backend
	if cfg.DiskDir != "" {
		backend = NewLayered(cfg.ExpansionTTL, cfg.DiskDir, cfg.FactsTTL)
	} else {
		backend = NewMemory(cfg.ExpansionTTL, 10*time.Minute)
	}

	return &Store{backend: backend, ttls: ttls}
}

// NewStoreWithBackend wires an explicit backend, used by tests to inject
// fakes.
func NewStoreWithBackend(backend Backend, cfg model.CacheConfig) *Store {
	return &Store{
		backend: backend,
		ttls: map[Category]time.Duration{
			CategoryExpansion:       cfg.ExpansionTTL,
			CategoryFacts:           cfg.FactsTTL,
			CategoryRecommendations: cfg.RecommendationsTTL,
			CategoryRelated:         cfg.RelatedTTL,
			CategoryTrending:        cfg.TrendingTTL,
		},
	}
}

// Get retrieves the serialized value for (category, key).
func (s *Store) Get(category Category, key string) ([]byte, bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	return s.backend.Get(string(category) + ":" + key)
}

// Set stores the serialized value under (category, key) with the category
// TTL. Best effort: a failed write only forgoes the cache benefit.
func (s *Store) Set(category Category, key string, value []byte) error {
	if s == nil || s.backend == nil {
		return model.ErrCacheUnavailable
	}
	return s.backend.Set(string(category)+":"+key, value, s.TTL(category))
}

// TTL returns the configured TTL for a category.
func (s *Store) TTL(category Category) time.Duration {
	if s == nil {
		return 0
	}
	return s.ttls[category]
}

// Clear drops every entry, all categories.
func (s *Store) Clear() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Clear()
}
