package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis, letting several server processes
// share rendered charts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the server at url (redis://[user:pass@]host:port/db)
// and verifies the connection with PING.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the stored bytes or a miss for redis.Nil.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data, retrying transient network failures.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, key, data, ttl).Err())
	})
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks network errors as retryable.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
