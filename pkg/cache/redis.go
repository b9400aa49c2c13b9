// Package cache holds the Redis-backed token blacklist used by logout.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jg4611/mad2-by-amit/config"

	"github.com/redis/go-redis/v9"
)

// blacklistKeyPrefix namespaces revoked JTIs so the blacklist can share a
// Redis database with future caches.
const blacklistKeyPrefix = "auth:blacklist:"

type RedisClient struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		config: cfg,
	}, nil
}

func (c *RedisClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// BlacklistToken records a revoked JTI for the remaining token lifetime.
func (c *RedisClient) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	return c.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a JTI was revoked by logout.
func (c *RedisClient) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	count, err := c.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Healthy pings the server, for readiness checks.
func (c *RedisClient) Healthy(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
