// Package cache provides an optional Redis-backed cache for computed
// availability responses. A nil client disables caching entirely, so
// callers never need to branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noyou75/GitlabsApp-Backend-sub001/metrics"
)

// Cache stores JSON-serialized values with a fixed TTL.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// New creates a cache. Pass a nil client to disable caching.
func New(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redisClient, ttl: ttl}
}

// Enabled reports whether cache operations do anything.
func (c *Cache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// Get reads a cached value into out. Returns false on miss, disabled
// cache, or any Redis/decode error; cache failures never surface.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		metrics.IncCacheLookup("miss")
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		metrics.IncCacheLookup("miss")
		return false
	}
	metrics.IncCacheLookup("hit")
	return true
}

// Set writes a value with the configured TTL. Errors are dropped.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate removes keys matching the given prefix. Used after
// schedule or booking writes so stale availability is not served.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	iter := c.redis.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.redis.Del(ctx, iter.Val()).Err()
	}
}
