package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter implements Counter with INCR and EXPIRE NX in one
// transaction, so counters survive restarts and are shared by replicas.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter connects to Redis and verifies the connection.
func NewRedisCounter(opts ...RedisOption) (*RedisCounter, error) {
	cfg := &RedisConfig{
		Addr:        "localhost:6379",
		PoolSize:    4,
		DialTimeout: 5 * time.Second,
		Prefix:      "stockcast",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewRedisCounterFromClient(client, cfg.Prefix), nil
}

// NewRedisCounterFromClient wraps an existing client.
func NewRedisCounterFromClient(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (c *RedisCounter) Close() error {
	return c.client.Close()
}

// Incr bumps key and starts its ttl on first use. Later hits in the same
// window leave the expiry alone.
func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	key = c.Key(key)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Key returns the stored name of key.
func (c *RedisCounter) Key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}
