package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"essaycoach-be/internal/models"
)

const keyPrefix = "essaycoach:rollup:"

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Connect parses url, pings the server and returns the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

func key(userID string) string {
	return keyPrefix + userID
}

func (c *RedisStatsCache) Get(ctx context.Context, userID string) (*models.RollupStatistics, bool, error) {
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached rollup: %w", err)
	}

	var stats models.RollupStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decoding cached rollup: %w", err)
	}
	return &stats, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, userID string, stats models.RollupStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding rollup: %w", err)
	}
	if err := c.client.Set(ctx, key(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching rollup: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("deleting cached rollup: %w", err)
	}
	return nil
}

// Ping reports whether the redis server is reachable.
func (c *RedisStatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
