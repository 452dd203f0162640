package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Tier2 is the persistent second cache tier shared across instances.
type Tier2 interface {
	Get(ctx context.Context, ns, key string) (string, bool)
	Set(ctx context.Context, ns, key, value string, ttl time.Duration)
}

// persistedEntry is the JSON blob stored in the second tier. The expiry
// is embedded so a reader can drop stale blobs even when the store's own
// TTL did not fire.
type persistedEntry struct {
	Value   string `json:"value"`
	Expiry  int64  `json:"expiry"`
	Created int64  `json:"created"`
}

type RedisTier struct {
	client *redis.Client
}

func NewRedisTier(client *redis.Client) *RedisTier {
	return &RedisTier{client: client}
}

func (t *RedisTier) key(ns, key string) string {
	return "cache:" + ns + ":" + key
}

func (t *RedisTier) Get(ctx context.Context, ns, key string) (string, bool) {
	data, err := t.client.Get(ctx, t.key(ns, key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		zap.L().Warn("tier2 get failed", zap.Error(err))
		return "", false
	}

	var e persistedEntry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return "", false
	}
	if time.Now().UnixMilli() >= e.Expiry {
		return "", false
	}

	return e.Value, true
}

func (t *RedisTier) Set(ctx context.Context, ns, key, value string, ttl time.Duration) {
	now := time.Now()
	e := persistedEntry{
		Value:   value,
		Expiry:  now.Add(ttl).UnixMilli(),
		Created: now.UnixMilli(),
	}

	b, err := json.Marshal(e)
	if err != nil {
		return
	}

	if err := t.client.Set(ctx, t.key(ns, key), b, ttl).Err(); err != nil {
		zap.L().Warn("tier2 set failed", zap.Error(err))
	}
}

// GetWithFallback checks the memory tier first, then the second tier,
// backfilling memory on a tier-2 hit. String values only: the second
// tier carries JSON blobs.
func (c *Layered) GetWithFallback(ctx context.Context, ns, key string) (string, bool) {
	if v, ok := c.Get(ns, key); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}

	if c.tier2 == nil {
		return "", false
	}

	v, ok := c.tier2.Get(ctx, ns, key)
	if !ok {
		return "", false
	}

	c.Set(ns, key, v)
	return v, true
}

// SetBoth populates both tiers.
func (c *Layered) SetBoth(ctx context.Context, ns, key, value string) {
	c.Set(ns, key, value)
	if c.tier2 != nil {
		c.tier2.Set(ctx, ns, key, value, c.config(ns).TTL)
	}
}
