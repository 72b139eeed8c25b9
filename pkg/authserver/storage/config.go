// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"time"
)

// Type defines the type of cache backend.
type Type string

const (
	// TypeMemory uses an in-process cache (default). Not shared between replicas.
	TypeMemory Type = "memory"

	// TypeRedis uses Redis, which lets several replicas share credentials and nonces.
	TypeRedis Type = "redis"

	// DefaultCleanupInterval is how often the memory cache purges expired entries.
	DefaultCleanupInterval = 5 * time.Minute
)

// CacheConfig configures the cache backend.
type CacheConfig struct {
	// Type specifies the cache backend type. Defaults to memory.
	Type Type

	// CleanupInterval applies to the memory backend only.
	CleanupInterval time.Duration

	// Redis is required when Type is TypeRedis.
	Redis *RedisConfig
}

// DefaultCacheConfig returns sensible defaults.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:            TypeMemory,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// NewCache creates a Cache implementation based on cfg.
// If cfg is nil, defaults to the in-memory cache.
func NewCache(ctx context.Context, cfg *CacheConfig) (Cache, error) {
	if cfg == nil {
		cfg = DefaultCacheConfig()
	}

	switch cfg.Type {
	case TypeMemory, "":
		var opts []MemoryCacheOption
		if cfg.CleanupInterval > 0 {
			opts = append(opts, WithCleanupInterval(cfg.CleanupInterval))
		}
		return NewMemoryCache(opts...), nil

	case TypeRedis:
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("redis url is required for redis cache")
		}
		return NewRedisCache(ctx, *cfg.Redis)

	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}
