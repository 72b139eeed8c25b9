// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewMemoryCache(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	defer cache.Close()

	require.NotNil(t, cache)
	assert.NotNil(t, cache.entries)
	assert.Equal(t, DefaultCleanupInterval, cache.cleanupInterval)
}

func TestNewMemoryCache_WithCleanupInterval(t *testing.T) {
	t.Parallel()
	customInterval := 1 * time.Minute
	cache := NewMemoryCache(WithCleanupInterval(customInterval))
	defer cache.Close()
	assert.Equal(t, customInterval, cache.cleanupInterval)
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	cache := NewMemoryCache(WithClock(clock.Now))
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", []byte("v"), 0))

	clock.Advance(59 * time.Second)
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	clock.Advance(time.Second)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// An expired key is free for SetNX again.
	ok, err := cache.SetNX(ctx, "k", []byte("w"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(365 * 24 * time.Hour)
	_, err = cache.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCache_CleanupExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	cache := NewMemoryCache(WithClock(clock.Now))
	defer cache.Close()

	for i := range 10 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("short-%d", i), []byte("v"), time.Second))
	}
	require.NoError(t, cache.Set(ctx, "long", []byte("v"), time.Hour))
	assert.Equal(t, 11, cache.Len())

	clock.Advance(2 * time.Second)
	cache.cleanupExpired()

	assert.Equal(t, 1, cache.Len())
	_, err := cache.Get(ctx, "long")
	assert.NoError(t, err)
}

func TestMemoryCache_CompareAndSwapKeepsExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	cache := NewMemoryCache(WithClock(clock.Now))
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "k", []byte("a"), time.Minute))
	clock.Advance(30 * time.Second)

	ok, err := cache.CompareAndSwap(ctx, "k", []byte("a"), []byte("b"), 0)
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(30 * time.Second)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound, "ttl 0 must keep the original deadline")
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	value := []byte("abc")
	require.NoError(t, cache.Set(ctx, "k", value, 0))
	value[0] = 'x'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'y'

	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryCache_Contract(t *testing.T) {
	t.Parallel()
	runCacheContract(t, func(t *testing.T) Cache {
		t.Helper()
		cache := NewMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })
		return cache
	})
}

func TestMemoryDirectory_Clients(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := NewMemoryDirectory()

	_, err := dir.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, dir.RegisterClient(ctx, &Client{ID: "b", Secret: "s"}))
	require.NoError(t, dir.RegisterClient(ctx, &Client{ID: "a", Secret: "s"}))

	err = dir.RegisterClient(ctx, &Client{ID: "a"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	err = dir.RegisterClient(ctx, &Client{ID: " "})
	assert.Error(t, err)

	got, err := dir.GetClient(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "s", got.Secret)
	assert.False(t, got.CreatedAt.IsZero())

	// Mutating the returned copy must not affect the stored client.
	got.Secret = "changed"
	again, err := dir.GetClient(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "s", again.Secret)

	clients, err := dir.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "a", clients[0].ID)
	assert.Equal(t, "b", clients[1].ID)

	require.NoError(t, dir.DeleteClient(ctx, "a"))
	assert.ErrorIs(t, dir.DeleteClient(ctx, "a"), ErrNotFound)
}

func TestMemoryDirectory_TokenCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := NewMemoryDirectory()

	cred := &TokenCredential{Token: "tok", TokenSecret: "sec", ClientID: "c", UserID: "u"}
	require.NoError(t, dir.CreateTokenCredential(ctx, cred))
	assert.NotEmpty(t, cred.ID)

	dup := &TokenCredential{Token: "tok"}
	assert.ErrorIs(t, dir.CreateTokenCredential(ctx, dup), ErrAlreadyExists)

	got, err := dir.GetTokenCredential(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, cred.ID, got.ID)
	assert.Equal(t, "u", got.UserID)

	require.NoError(t, dir.DeleteTokenCredential(ctx, "tok"))
	_, err = dir.GetTokenCredential(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, dir.DeleteTokenCredential(ctx, "tok"), ErrNotFound)
}
