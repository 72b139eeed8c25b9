// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// runCacheContract exercises the behaviour every Cache implementation must share.
func runCacheContract(t *testing.T, newCache func(t *testing.T) Cache) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		cache := newCache(t)
		_, err := cache.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set get delete", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := newCache(t)

		require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		require.NoError(t, cache.Delete(ctx, "k"))
		_, err = cache.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing key is not an error.
		assert.NoError(t, cache.Delete(ctx, "k"))
	})

	t.Run("setnx", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := newCache(t)

		ok, err := cache.SetNX(ctx, "k", []byte("first"), time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = cache.SetNX(ctx, "k", []byte("second"), time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)
	})

	t.Run("compare and swap", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := newCache(t)

		ok, err := cache.CompareAndSwap(ctx, "k", []byte("a"), []byte("b"), 0)
		require.NoError(t, err)
		assert.False(t, ok, "missing key must not swap")

		require.NoError(t, cache.Set(ctx, "k", []byte("a"), time.Minute))

		ok, err = cache.CompareAndSwap(ctx, "k", []byte("x"), []byte("b"), 0)
		require.NoError(t, err)
		assert.False(t, ok, "stale expected value must not swap")

		ok, err = cache.CompareAndSwap(ctx, "k", []byte("a"), []byte("b"), time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), got)
	})

	t.Run("compare and delete", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := newCache(t)

		require.NoError(t, cache.Set(ctx, "k", []byte("a"), time.Minute))

		ok, err := cache.CompareAndDelete(ctx, "k", []byte("b"))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = cache.CompareAndDelete(ctx, "k", []byte("a"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = cache.CompareAndDelete(ctx, "k", []byte("a"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent setnx has one winner", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := newCache(t)

		var winners atomic.Int32
		var g errgroup.Group
		for range 32 {
			g.Go(func() error {
				ok, err := cache.SetNX(ctx, "race", []byte("v"), time.Minute)
				if ok {
					winners.Add(1)
				}
				return err
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), winners.Load())
	})

	t.Run("ping", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, newCache(t).Ping(context.Background()))
	})
}
