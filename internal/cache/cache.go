// Package cache implements interfaces.Cache over Redis, the optional layer
// fronting component H's read endpoints. Per the interface contract, a
// cache outage must never fail a read: every method here logs and returns a
// miss/no-op instead of propagating a transport error to the caller.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
)

// Cache wraps one Redis client.
type Cache struct {
	client *redis.Client
	log    arbor.ILogger
}

// New builds a Cache against addr (host:port).
func New(addr, password string, db int) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		log:    common.GetLogger(),
	}
}

// Get returns (value, true, nil) on a hit and (_, false, nil) on a miss; it
// never returns a non-nil error, since a transport failure is logged and
// treated as a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: get failed, treating as miss")
		return "", false, nil
	}
	return val, true, nil
}

// Set is best-effort: a failed write is logged, never returned as an error,
// since H's read paths must survive a cache outage untouched.
func (c *Cache) Set(ctx context.Context, key string, value string, ttlSeconds int) error {
	if err := c.client.Set(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
	return nil
}

// InvalidatePattern scans and deletes every key matching pattern, used by
// H's POST /api/cache/invalidate/{scope} endpoint so cached reads stop
// serving stale data.
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("pattern", pattern).Msg("cache: scan failed")
		return nil
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: del failed")
	}
	return nil
}
