package cache

import (
	"sort"
	"sync"
	"time"
)

type entry struct {
	value   any
	created time.Time
	expires time.Time
}

// NamespaceConfig sets the TTL and capacity of one cache namespace.
type NamespaceConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// Layered is an in-process expiring cache with an optional Redis second
// tier (see redis.go). Handlers receive it by injection; there is no
// package-level instance.
type Layered struct {
	mu         sync.Mutex
	namespaces map[string]map[string]entry
	configs    map[string]NamespaceConfig

	tier2 Tier2

	stop chan struct{}
	now  func() time.Time
}

const defaultTTL = 5 * time.Minute

// evictFraction of the namespace, oldest first, is dropped when the
// capacity is hit.
const evictFraction = 0.2

func New(configs map[string]NamespaceConfig, tier2 Tier2) *Layered {
	if configs == nil {
		configs = map[string]NamespaceConfig{}
	}
	return &Layered{
		namespaces: map[string]map[string]entry{},
		configs:    configs,
		tier2:      tier2,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
}

func (c *Layered) config(ns string) NamespaceConfig {
	cfg, ok := c.configs[ns]
	if !ok {
		cfg = NamespaceConfig{TTL: defaultTTL, MaxEntries: 500}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 500
	}
	return cfg
}

// Get returns the live value for key, or false when absent or expired.
func (c *Layered) Get(ns, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.namespaces[ns]
	if !ok {
		return nil, false
	}

	e, ok := bucket[key]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expires) {
		delete(bucket, key)
		return nil, false
	}

	return e.value, true
}

// Set stores value under the namespace's default TTL.
func (c *Layered) Set(ns, key string, value any) {
	c.SetWithTTL(ns, key, value, c.config(ns).TTL)
}

func (c *Layered) SetWithTTL(ns, key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.namespaces[ns]
	if !ok {
		bucket = map[string]entry{}
		c.namespaces[ns] = bucket
	}

	cfg := c.config(ns)
	if _, exists := bucket[key]; !exists && len(bucket) >= cfg.MaxEntries {
		c.evictOldest(bucket)
	}

	now := c.now()
	bucket[key] = entry{
		value:   value,
		created: now,
		expires: now.Add(ttl),
	}
}

func (c *Layered) Delete(ns, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bucket, ok := c.namespaces[ns]; ok {
		delete(bucket, key)
	}
}

// evictOldest removes the oldest 20% of the bucket by creation time.
// Caller holds the lock.
func (c *Layered) evictOldest(bucket map[string]entry) {
	n := int(float64(len(bucket)) * evictFraction)
	if n < 1 {
		n = 1
	}

	type aged struct {
		key     string
		created time.Time
	}
	all := make([]aged, 0, len(bucket))
	for k, e := range bucket {
		all = append(all, aged{key: k, created: e.created})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].created.Before(all[j].created)
	})

	for i := 0; i < n && i < len(all); i++ {
		delete(bucket, all[i].key)
	}
}

// StartSweeper launches the periodic purge of expired entries. Stop shuts
// it down.
func (c *Layered) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *Layered) Stop() {
	close(c.stop)
}

func (c *Layered) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, bucket := range c.namespaces {
		for k, e := range bucket {
			if !now.Before(e.expires) {
				delete(bucket, k)
			}
		}
	}
}

// Len reports live entries in a namespace (expired ones may linger until
// the next sweep).
func (c *Layered) Len(ns string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.namespaces[ns])
}
