// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package runconfig

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/stacklok/oauth1d/pkg/authserver"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/authserver/storage/sqlite"
	"github.com/stacklok/oauth1d/pkg/logger"
)

// BuildConfig converts RunConfig to authserver.Config.
func BuildConfig(cfg *RunConfig) (authserver.Config, error) {
	if cfg == nil {
		return authserver.Config{}, errors.New("RunConfig is nil")
	}
	if err := cfg.Validate(); err != nil {
		return authserver.Config{}, fmt.Errorf("invalid run config: %w", err)
	}
	return cfg.authserverConfig(), nil
}

// BuildPublicURL parses public_url. Returns nil when it is not set.
func BuildPublicURL(cfg *RunConfig) (*url.URL, error) {
	if cfg.PublicURL == "" {
		return nil, nil
	}
	u, err := url.Parse(cfg.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("invalid public_url: %w", err)
	}
	return u, nil
}

// BuildCacheConfig converts the cache section to storage.CacheConfig,
// reading the Redis password file if one is configured.
func BuildCacheConfig(cfg *CacheConfig) (*storage.CacheConfig, error) {
	if cfg == nil {
		return storage.DefaultCacheConfig(), nil
	}
	out := &storage.CacheConfig{
		Type:            storage.Type(cfg.Type),
		CleanupInterval: cfg.CleanupInterval,
	}
	if out.Type != storage.TypeRedis {
		return out, nil
	}

	password, err := resolvePasswordFromFile(cfg.Redis.PasswordFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve redis password: %w", err)
	}
	out.Redis = &storage.RedisConfig{
		URL:       cfg.Redis.URL,
		Password:  password,
		KeyPrefix: cfg.Redis.KeyPrefix,
	}
	return out, nil
}

// resolvePasswordFromFile returns the trimmed file content, or "" for no file.
func resolvePasswordFromFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 - file path is provided by user via config
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BuildDirectory opens the durable directory: sqlite when database.path is
// set, otherwise an in-memory directory that is lost on restart.
func BuildDirectory(ctx context.Context, cfg *DatabaseConfig) (storage.Directory, error) {
	if cfg == nil || cfg.Path == "" {
		logger.Warnw("no database path configured; clients and token credentials are kept in memory")
		return storage.NewMemoryDirectory(), nil
	}
	db, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	return sqlite.NewDirectory(db), nil
}

// BuildStorage wires the cache and the directory into storage.Storage with
// options matching authCfg.
func BuildStorage(ctx context.Context, cfg *RunConfig, authCfg authserver.Config) (storage.Storage, error) {
	cacheCfg, err := BuildCacheConfig(&cfg.Cache)
	if err != nil {
		return nil, err
	}
	cache, err := storage.NewCache(ctx, cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	dir, err := BuildDirectory(ctx, &cfg.Database)
	if err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	stor, err := storage.New(cache, dir, authCfg.StorageOptions()...)
	if err != nil {
		_ = cache.Close()
		_ = dir.Close()
		return nil, err
	}

	logger.Infow("storage ready",
		"cache", cacheCfg.Type,
		"database", cfg.Database.Path,
	)
	return stor, nil
}
