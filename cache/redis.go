package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "username:"

// RedisCache keeps names in Redis so every server instance shares them.
// Redis failures degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(url string, ttl time.Duration, log *zap.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl, log: log}, nil
}

func (c *RedisCache) GetMany(ctx context.Context, ids []string) (map[string]string, []string) {
	found := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn("redis mget failed", zap.Error(err))
		return found, ids
	}

	var missing []string
	for i, v := range values {
		name, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		found[ids[i]] = name
	}
	return found, missing
}

func (c *RedisCache) SetMany(ctx context.Context, names map[string]string) {
	if len(names) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for id, name := range names {
		pipe.Set(ctx, keyPrefix+id, name, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("redis set failed", zap.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.log.Warn("redis delete failed", zap.Error(err))
	}
}

// Stats reports connection pool usage.
func (c *RedisCache) Stats() map[string]interface{} {
	ps := c.client.PoolStats()
	return map[string]interface{}{
		"backend":     "redis",
		"hits":        ps.Hits,
		"misses":      ps.Misses,
		"timeouts":    ps.Timeouts,
		"total_conns": ps.TotalConns,
		"idle_conns":  ps.IdleConns,
		"ttl_seconds": c.ttl.Seconds(),
	}
}

// Purge is a no-op; keys carry their own expiry.
func (c *RedisCache) Purge() {}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
