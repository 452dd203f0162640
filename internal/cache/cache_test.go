package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func newTestCache(cfg map[string]NamespaceConfig) (*Layered, *time.Time) {
	c := New(cfg, nil)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	cur := &now
	c.now = func() time.Time { return *cur }
	return c, cur
}

func TestSetGetWithinTTL(t *testing.T) {
	c, _ := newTestCache(map[string]NamespaceConfig{
		"salons": {TTL: time.Minute, MaxEntries: 10},
	})

	c.Set("salons", "k", "v")

	got, ok := c.Get("salons", "k")
	if !ok || got != "v" {
		t.Fatalf("Get = %v/%v, want v/true", got, ok)
	}
}

func TestGetAfterExpiry(t *testing.T) {
	c, now := newTestCache(map[string]NamespaceConfig{
		"salons": {TTL: time.Minute, MaxEntries: 10},
	})

	c.Set("salons", "k", "v")
	*now = now.Add(61 * time.Second)

	if _, ok := c.Get("salons", "k"); ok {
		t.Fatal("expired entry still returned")
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	c, now := newTestCache(map[string]NamespaceConfig{
		"short": {TTL: time.Minute, MaxEntries: 10},
		"long":  {TTL: time.Hour, MaxEntries: 10},
	})

	c.Set("short", "k", 1)
	c.Set("long", "k", 2)

	*now = now.Add(2 * time.Minute)

	if _, ok := c.Get("short", "k"); ok {
		t.Fatal("short namespace should have expired")
	}
	if v, ok := c.Get("long", "k"); !ok || v != 2 {
		t.Fatalf("long namespace lost its entry: %v/%v", v, ok)
	}
}

func TestEvictionDropsOldestFifth(t *testing.T) {
	c, now := newTestCache(map[string]NamespaceConfig{
		"ns": {TTL: time.Hour, MaxEntries: 10},
	})

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, k := range keys {
		c.Set("ns", k, k)
		*now = now.Add(time.Second)
	}

	// Cap reached: the next insert evicts the oldest 20% (2 entries).
	c.Set("ns", "k", "k")

	if _, ok := c.Get("ns", "a"); ok {
		t.Fatal("oldest entry survived eviction")
	}
	if _, ok := c.Get("ns", "b"); ok {
		t.Fatal("second-oldest entry survived eviction")
	}
	if _, ok := c.Get("ns", "c"); !ok {
		t.Fatal("entry outside the oldest fifth was evicted")
	}
	if _, ok := c.Get("ns", "k"); !ok {
		t.Fatal("new entry missing after eviction")
	}
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(map[string]NamespaceConfig{
		"ns": {TTL: time.Hour, MaxEntries: 3},
	})

	c.Set("ns", "a", 1)
	c.Set("ns", "b", 2)
	c.Set("ns", "c", 3)
	c.Set("ns", "a", 10) // overwrite at capacity

	if c.Len("ns") != 3 {
		t.Fatalf("len = %d, want 3", c.Len("ns"))
	}
	if v, _ := c.Get("ns", "a"); v != 10 {
		t.Fatalf("overwrite lost: %v", v)
	}
}

func TestSweepPurgesExpired(t *testing.T) {
	c, now := newTestCache(map[string]NamespaceConfig{
		"ns": {TTL: time.Minute, MaxEntries: 10},
	})

	c.Set("ns", "old", 1)
	*now = now.Add(2 * time.Minute)
	c.Set("ns", "fresh", 2)

	c.sweep()

	if c.Len("ns") != 1 {
		t.Fatalf("len after sweep = %d, want 1", c.Len("ns"))
	}
	if _, ok := c.Get("ns", "fresh"); !ok {
		t.Fatal("fresh entry swept")
	}
}

type fakeTier2 struct {
	mu   sync.Mutex
	data map[string]string
}

func (f *fakeTier2) Get(_ context.Context, ns, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[ns+":"+key]
	return v, ok
}

func (f *fakeTier2) Set(_ context.Context, ns, key, value string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[ns+":"+key] = value
}

func TestGetWithFallbackBackfills(t *testing.T) {
	tier2 := &fakeTier2{data: map[string]string{"ns:k": "persisted"}}
	c := New(map[string]NamespaceConfig{
		"ns": {TTL: time.Minute, MaxEntries: 10},
	}, tier2)

	v, ok := c.GetWithFallback(context.Background(), "ns", "k")
	if !ok || v != "persisted" {
		t.Fatalf("fallback = %v/%v", v, ok)
	}

	// The hit must now be served from memory.
	if got, ok := c.Get("ns", "k"); !ok || got != "persisted" {
		t.Fatal("tier-2 hit was not backfilled into memory")
	}
}

func TestSetBothWritesBothTiers(t *testing.T) {
	tier2 := &fakeTier2{data: map[string]string{}}
	c := New(map[string]NamespaceConfig{
		"ns": {TTL: time.Minute, MaxEntries: 10},
	}, tier2)

	c.SetBoth(context.Background(), "ns", "k", "v")

	if _, ok := c.Get("ns", "k"); !ok {
		t.Fatal("memory tier missing the entry")
	}
	if v, ok := tier2.Get(context.Background(), "ns", "k"); !ok || v != "v" {
		t.Fatalf("tier2 = %v/%v", v, ok)
	}
}
