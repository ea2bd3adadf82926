package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"studyplan/internal/metrics"
)

const keyPrefix = "studyplan:availability:"

// Cache stores computed availability responses in Redis with a TTL.
// A nil *Cache is a valid no-op cache, so callers never branch on
// whether caching is configured.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// New creates a cache backed by the given Redis client.
func New(rdb *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Cache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Key derives a stable cache key from the request payload.
func Key(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get loads a cached value into out and reports whether it was present.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if c == nil || key == "" {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		metrics.IncCache("miss")
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		metrics.IncCache("miss")
		return false
	}
	metrics.IncCache("hit")
	return true
}

// Set stores a value under key. Failures are logged and swallowed; the
// cache is an optimization, never a dependency.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if c == nil || key == "" {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}

// Invalidate drops every cached availability response. Called after any
// commitment, absence or preferences mutation, since all of them change
// what a scan would return.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			c.logger.Warn().Err(err).Msg("cache invalidation scan failed")
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn().Err(err).Msg("cache invalidation delete failed")
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
