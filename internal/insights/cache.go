package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/redis/go-redis/v9"
)

// Cache stores generated insights by industry.
type Cache interface {
	Get(ctx context.Context, industry string) (*types.IndustryInsight, bool, error)
	Set(ctx context.Context, industry string, insight types.IndustryInsight, ttl time.Duration) error
}

// RedisCache implements Cache on Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

// CacheKey returns the Redis key for industry.
func CacheKey(industry string) string {
	return "insights:" + industry
}

// Get returns the cached insight, if present.
func (c *RedisCache) Get(ctx context.Context, industry string) (*types.IndustryInsight, bool, error) {
	data, err := c.client.Get(ctx, CacheKey(industry)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached insight: %w", err)
	}

	var insight types.IndustryInsight
	if err := json.Unmarshal(data, &insight); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached insight: %w", err)
	}
	return &insight, true, nil
}

// Set caches insight for ttl.
func (c *RedisCache) Set(ctx context.Context, industry string, insight types.IndustryInsight, ttl time.Duration) error {
	data, err := json.Marshal(insight)
	if err != nil {
		return fmt.Errorf("failed to encode insight: %w", err)
	}
	if err := c.client.Set(ctx, CacheKey(industry), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache insight: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
