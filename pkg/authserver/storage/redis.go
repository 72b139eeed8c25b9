// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/stacklok/oauth1d/pkg/logger"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second

	// DefaultConnectAttempts is how many times the initial PING is tried.
	DefaultConnectAttempts = 5

	// DefaultRedisKeyPrefix namespaces every key written by this server.
	DefaultRedisKeyPrefix = "oauth1d:"
)

// RedisConfig holds Redis connection configuration for runtime use.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection URL.
	URL string

	// Password overrides the password in URL when set.
	Password string

	// KeyPrefix is prepended to every key, e.g. "oauth1d:".
	KeyPrefix string

	// Timeouts (defaults: Dial=5s, Read=3s, Write=3s).
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ConnectAttempts bounds the retried initial PING (default 5).
	ConnectAttempts uint
}

// RedisCache implements Cache on top of Redis. Atomic operations use
// SET NX and Lua scripts so several server replicas can share one cache.
type RedisCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// compareAndSwapScript replaces KEYS[1] with ARGV[2] if it currently holds
// ARGV[1]. ARGV[3] is the new TTL in milliseconds; 0 keeps the remaining TTL.
// Returns 1 on success, 0 otherwise.
var compareAndSwapScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current or current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl <= 0 then
	ttl = redis.call('PTTL', KEYS[1])
end
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// compareAndDeleteScript deletes KEYS[1] if it currently holds ARGV[1].
// Returns 1 on success, 0 otherwise.
var compareAndDeleteScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current and current == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// NewRedisCache connects to Redis and verifies the connection, retrying the
// initial PING with exponential backoff.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	// Apply defaults
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ConnectAttempts == 0 {
		cfg.ConnectAttempts = DefaultConnectAttempts
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRedisKeyPrefix
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, client.Ping(ctx).Err()
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(cfg.ConnectAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warnw("redis not reachable, retrying", "error", err, "retry_in", next)
		}),
	)
	if err != nil {
		// Close the client to prevent resource leak
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// NewRedisCacheWithClient creates a RedisCache with a pre-configured client.
// This is useful for testing with miniredis.
func NewRedisCacheWithClient(client redis.UniversalClient, keyPrefix string) *RedisCache {
	return &RedisCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Close closes the Redis client connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping checks Redis connectivity (health check).
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the value stored under key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return data, nil
}

// Set stores value under key.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

// SetNX stores value only if key is absent.
func (c *RedisCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.key(key), value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set key if absent: %w", err)
	}
	return ok, nil
}

// CompareAndSwap replaces the value of key if it currently equals expected.
func (c *RedisCache) CompareAndSwap(
	ctx context.Context, key string, expected, value []byte, ttl time.Duration,
) (bool, error) {
	result, err := compareAndSwapScript.Run(
		ctx, c.client, []string{c.key(key)}, expected, value, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to compare and swap key: %w", err)
	}
	return result == 1, nil
}

// CompareAndDelete removes key if its value currently equals expected.
func (c *RedisCache) CompareAndDelete(ctx context.Context, key string, expected []byte) (bool, error) {
	result, err := compareAndDeleteScript.Run(ctx, c.client, []string{c.key(key)}, expected).Int()
	if err != nil {
		return false, fmt.Errorf("failed to compare and delete key: %w", err)
	}
	return result == 1, nil
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

var _ Cache = (*RedisCache)(nil)
