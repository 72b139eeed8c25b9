// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Directory is the durable half of Storage: registered clients and issued
// token credentials.
type Directory interface {
	ClientStore
	TokenCredentialStore
	Ping(ctx context.Context) error
	Close() error
}

// Settings are the cache layout values a Storage was built with. The server
// configuration must agree with them.
type Settings struct {
	TemporaryCredentialKeyPrefix string
	NonceWindow                  time.Duration
}

// DefaultSettings returns the Settings of a Storage built without options.
func DefaultSettings() Settings {
	return Settings{
		TemporaryCredentialKeyPrefix: DefaultTemporaryCredentialKeyPrefix,
		NonceWindow:                  DefaultNonceWindow,
	}
}

// Option configures the Storage returned by New.
type Option func(*options)

type options struct {
	temporaryCredentialKeyPrefix string
	nonceKeyPrefix               string
	nonceWindow                  time.Duration
	now                          func() time.Time
}

// WithTemporaryCredentialKeyPrefix sets the cache key prefix for temporary credentials.
func WithTemporaryCredentialKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.temporaryCredentialKeyPrefix = prefix
	}
}

// WithNonceKeyPrefix sets the cache key prefix for nonce records.
func WithNonceKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.nonceKeyPrefix = prefix
	}
}

// WithNonceWindow sets how long nonce tuples are remembered.
func WithNonceWindow(window time.Duration) Option {
	return func(o *options) {
		o.nonceWindow = window
	}
}

// WithTimeSource overrides the clock used to stamp credentials.
func WithTimeSource(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// compositeStorage joins a Cache-backed temporary store and nonce ledger with
// a durable Directory.
type compositeStorage struct {
	*CacheCredentialStore
	*CacheNonceLedger
	Directory

	cache Cache
}

// New composes a Storage from a cache and a directory. Close releases both.
func New(cache Cache, dir Directory, opts ...Option) (Storage, error) {
	if cache == nil {
		return nil, errors.New("cache is required")
	}
	if dir == nil {
		return nil, errors.New("directory is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &compositeStorage{
		CacheCredentialStore: NewCacheCredentialStore(cache, o.temporaryCredentialKeyPrefix, o.now),
		CacheNonceLedger:     NewCacheNonceLedger(cache, o.nonceKeyPrefix, o.nonceWindow),
		Directory:            dir,
		cache:                cache,
	}, nil
}

// Health pings the cache and the directory.
func (s *compositeStorage) Health(ctx context.Context) error {
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache unhealthy: %w", err)
	}
	if err := s.Directory.Ping(ctx); err != nil {
		return fmt.Errorf("directory unhealthy: %w", err)
	}
	return nil
}

// Settings reports the effective temporary credential prefix and nonce window.
func (s *compositeStorage) Settings() Settings {
	return Settings{
		TemporaryCredentialKeyPrefix: s.CacheCredentialStore.keyPrefix,
		NonceWindow:                  s.CacheNonceLedger.window,
	}
}

// Close closes the cache and the directory.
func (s *compositeStorage) Close() error {
	return errors.Join(s.cache.Close(), s.Directory.Close())
}

var _ Storage = (*compositeStorage)(nil)
