// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/oauth1d/pkg/logger"
)

// timedEntry wraps a value with its expiry. A zero expiresAt never expires.
type timedEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *timedEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache implements Cache with an in-memory map.
// It is safe for concurrent use but is local to a single process; use
// RedisCache when several server replicas share state.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*timedEntry[[]byte]

	now func() time.Time

	// cleanupInterval is how often the background cleanup runs
	cleanupInterval time.Duration

	// stopCleanup is used to signal the cleanup goroutine to stop
	stopCleanup chan struct{}

	// cleanupDone is closed when the cleanup goroutine has fully stopped
	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// MemoryCacheOption configures a MemoryCache instance.
type MemoryCacheOption func(*MemoryCache)

// WithCleanupInterval sets a custom cleanup interval.
func WithCleanupInterval(interval time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) {
		if interval > 0 {
			c.cleanupInterval = interval
		}
	}
}

// WithClock overrides the time source. Used by tests to simulate TTL expiry.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryCache creates a MemoryCache and starts its background cleanup goroutine.
func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries:         make(map[string]*timedEntry[[]byte]),
		now:             time.Now,
		cleanupInterval: DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupLoop()

	return c
}

// Ping is a no-op for the in-memory cache since it is always available.
func (*MemoryCache) Ping(_ context.Context) error {
	return nil
}

// Close stops the background cleanup goroutine and waits for it to finish.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
		<-c.cleanupDone
	})
	return nil
}

func (c *MemoryCache) cleanupLoop() {
	defer close(c.cleanupDone)

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCleanup:
			return
		case <-ticker.C:
			c.cleanupExpired()
		}
	}
}

// cleanupExpired collects expired keys under the read lock and deletes them
// under the write lock, re-checking expiry in case a key was rewritten.
func (c *MemoryCache) cleanupExpired() {
	now := c.now()

	c.mu.RLock()
	var expired []string
	for k, v := range c.entries {
		if v.expired(now) {
			expired = append(expired, k)
		}
	}
	c.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	c.mu.Lock()
	for _, k := range expired {
		if e, ok := c.entries[k]; ok && e.expired(now) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	logger.Debugw("purged expired cache entries", "count", len(expired))
}

func (c *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

// lookup returns the live entry for key. Callers must hold c.mu.
func (c *MemoryCache) lookup(key string) (*timedEntry[[]byte], bool) {
	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		return nil, false
	}
	return e, true
}

// Get returns a copy of the value stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(e.value), nil
}

// Set stores a copy of value under key.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &timedEntry[[]byte]{value: slices.Clone(value), expiresAt: c.expiry(ttl)}
	return nil
}

// SetNX stores value only if key is absent or expired.
func (c *MemoryCache) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup(key); ok {
		return false, nil
	}
	c.entries[key] = &timedEntry[[]byte]{value: slices.Clone(value), expiresAt: c.expiry(ttl)}
	return true, nil
}

// CompareAndSwap replaces the value of key if it currently equals expected.
func (c *MemoryCache) CompareAndSwap(
	_ context.Context, key string, expected, value []byte, ttl time.Duration,
) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(key)
	if !ok || !bytes.Equal(e.value, expected) {
		return false, nil
	}

	expiresAt := e.expiresAt
	if ttl > 0 {
		expiresAt = c.expiry(ttl)
	}
	c.entries[key] = &timedEntry[[]byte]{value: slices.Clone(value), expiresAt: expiresAt}
	return true, nil
}

// CompareAndDelete removes key if its value currently equals expected.
func (c *MemoryCache) CompareAndDelete(_ context.Context, key string, expected []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(key)
	if !ok || !bytes.Equal(e.value, expected) {
		return false, nil
	}
	delete(c.entries, key)
	return true, nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Len returns the number of physically stored entries, including expired
// ones not yet purged.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// MemoryDirectory implements ClientStore and TokenCredentialStore in memory.
// Intended for development and tests; use the sqlite package for durability.
type MemoryDirectory struct {
	mu      sync.RWMutex
	clients map[string]*Client

	// tokens maps oauth_token -> TokenCredential.
	tokens map[string]*TokenCredential
}

// NewMemoryDirectory creates an empty MemoryDirectory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		clients: make(map[string]*Client),
		tokens:  make(map[string]*TokenCredential),
	}
}

// GetClient returns a copy of the client.
func (d *MemoryDirectory) GetClient(_ context.Context, id string) (*Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	client, ok := d.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: client %q", ErrNotFound, id)
	}
	cp := *client
	return &cp, nil
}

// RegisterClient adds a client.
func (d *MemoryDirectory) RegisterClient(_ context.Context, client *Client) error {
	if client == nil || strings.TrimSpace(client.ID) == "" {
		return fmt.Errorf("client ID is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.clients[client.ID]; ok {
		return fmt.Errorf("%w: client %q", ErrAlreadyExists, client.ID)
	}
	cp := *client
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	d.clients[client.ID] = &cp
	return nil
}

// ListClients returns copies of all clients ordered by ID.
func (d *MemoryDirectory) ListClients(_ context.Context) ([]*Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Client, 0, len(d.clients))
	for _, c := range d.clients {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Client) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// DeleteClient removes a client.
func (d *MemoryDirectory) DeleteClient(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.clients[id]; !ok {
		return fmt.Errorf("%w: client %q", ErrNotFound, id)
	}
	delete(d.clients, id)
	return nil
}

// CreateTokenCredential stores a copy of cred and assigns its ID.
func (d *MemoryDirectory) CreateTokenCredential(_ context.Context, cred *TokenCredential) error {
	if cred == nil || cred.Token == "" {
		return fmt.Errorf("token credential with a token is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tokens[cred.Token]; ok {
		return fmt.Errorf("%w: token credential", ErrAlreadyExists)
	}
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now().UTC()
	}
	cp := *cred
	d.tokens[cred.Token] = &cp
	return nil
}

// GetTokenCredential returns a copy of the credential for token.
func (d *MemoryDirectory) GetTokenCredential(_ context.Context, token string) (*TokenCredential, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cred, ok := d.tokens[token]
	if !ok {
		return nil, fmt.Errorf("%w: token credential", ErrNotFound)
	}
	cp := *cred
	return &cp, nil
}

// DeleteTokenCredential removes the credential for token.
func (d *MemoryDirectory) DeleteTokenCredential(_ context.Context, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tokens[token]; !ok {
		return fmt.Errorf("%w: token credential", ErrNotFound)
	}
	delete(d.tokens, token)
	return nil
}

// Ping is a no-op; the directory lives in process memory.
func (*MemoryDirectory) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (*MemoryDirectory) Close() error {
	return nil
}

// Compile-time interface compliance checks
var (
	_ Cache                = (*MemoryCache)(nil)
	_ ClientStore          = (*MemoryDirectory)(nil)
	_ TokenCredentialStore = (*MemoryDirectory)(nil)
)
