package viewcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "view:"

// Redis is the shared cache store for multi-instance deployments; entry
// expiry is delegated to Redis TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, path string) ([]byte, error) {
	body, err := c.client.Get(ctx, keyPrefix+path).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get %s: %w", path, err)
	}
	return body, nil
}

func (c *Redis) Set(ctx context.Context, path string, body []byte) error {
	if err := c.client.Set(ctx, keyPrefix+path, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", path, err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, path string) error {
	if err := c.client.Del(ctx, keyPrefix+path).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", path, err)
	}
	return nil
}

func (c *Redis) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
