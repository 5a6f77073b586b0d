package cache

import (
	"testing"
	"time"

	"github.com/versolabs/verso/internal/model"
)

func testCacheConfig() model.CacheConfig {
	return model.CacheConfig{
		Enabled:            true,
		ExpansionTTL:       30 * time.Minute,
		FactsTTL:           60 * time.Minute,
		RecommendationsTTL: 30 * time.Minute,
		RelatedTTL:         30 * time.Minute,
		TrendingTTL:        5 * time.Minute,
	}
}

func TestKey_Stable(t *testing.T) {
	a := Key("article-1", "facts")
	b := Key("article-1", "facts")
	c := Key("article-2", "facts")

	if a != b {
		t.Error("Expected identical parts to yield identical keys")
	}
	if a == c {
		t.Error("Expected different parts to yield different keys")
	}
	if len(a) == 0 {
		t.Error("Expected non-empty key")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStoreWithBackend(NewMemory(time.Minute, time.Minute), testCacheConfig())

	if _, found := store.Get(CategoryFacts, "k1"); found {
		t.Error("Expected miss on empty store")
	}

	if err := store.Set(CategoryFacts, "k1", []byte("payload")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, found := store.Get(CategoryFacts, "k1")
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if string(value) != "payload" {
		t.Errorf("Got %q, want %q", value, "payload")
	}
}

func TestStore_CategoriesIsolated(t *testing.T) {
	store := NewStoreWithBackend(NewMemory(time.Minute, time.Minute), testCacheConfig())

	if err := store.Set(CategoryFacts, "k1", []byte("facts")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := store.Get(CategoryRelated, "k1"); found {
		t.Error("Expected miss: same key in a different category")
	}
}

func TestStore_NilIsPermanentMiss(t *testing.T) {
	var store *Store

	if _, found := store.Get(CategoryExpansion, "k1"); found {
		t.Error("Expected nil store to miss")
	}
	if err := store.Set(CategoryExpansion, "k1", []byte("x")); err != model.ErrCacheUnavailable {
		t.Errorf("Expected ErrCacheUnavailable, got %v", err)
	}
	if store.TTL(CategoryExpansion) != 0 {
		t.Error("Expected zero TTL from nil store")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Expected nil store Clear to be a no-op, got %v", err)
	}
}

func TestStore_PerCategoryTTL(t *testing.T) {
	store := NewStoreWithBackend(NewMemory(time.Minute, time.Minute), testCacheConfig())

	if got := store.TTL(CategoryFacts); got != 60*time.Minute {
		t.Errorf("Facts TTL = %v, want 60m", got)
	}
	if got := store.TTL(CategoryTrending); got != 5*time.Minute {
		t.Errorf("Trending TTL = %v, want 5m", got)
	}
}

func TestNewStore_DisabledReturnsNil(t *testing.T) {
	cfg := testCacheConfig()
	cfg.Enabled = false

	if store := NewStore(cfg); store != nil {
		t.Error("Expected nil store when caching is disabled")
	}
}

func TestMemory_Expiry(t *testing.T) {
	memory := NewMemory(time.Minute, time.Minute)

	if err := memory.Set("k1", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := memory.Get("k1"); found {
		t.Error("Expected entry to expire")
	}
}

func TestDisk_RoundTripAndExpiry(t *testing.T) {
	disk := NewDisk(t.TempDir(), time.Minute)

	if err := disk.Set("k1", []byte("persisted"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, found := disk.Get("k1")
	if !found || string(value) != "persisted" {
		t.Fatalf("Expected hit with %q, got %q (found=%v)", "persisted", value, found)
	}

	if err := disk.Set("k2", []byte("ephemeral"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := disk.Get("k2"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	seed := NewDisk(dir, time.Minute)
	if err := seed.Set("k1", []byte("warm"), time.Minute); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	layered := NewLayered(time.Minute, dir, time.Minute)

	value, found := layered.Get("k1")
	if !found || string(value) != "warm" {
		t.Fatalf("Expected disk hit, got %q (found=%v)", value, found)
	}

	// The hit must now be served from memory.
	if _, found := layered.memory.Get("k1"); !found {
		t.Error("Expected disk hit to be promoted into memory")
	}
}

func TestLayered_Clear(t *testing.T) {
	layered := NewLayered(time.Minute, t.TempDir(), time.Minute)

	if err := layered.Set("k1", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := layered.Get("k1"); found {
		t.Error("Expected miss after Clear")
	}
}
