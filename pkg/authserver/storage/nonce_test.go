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

func TestCacheNonceLedger_Defaults(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	defer cache.Close()

	ledger := NewCacheNonceLedger(cache, "", 0)
	assert.Equal(t, DefaultNonceKeyPrefix, ledger.keyPrefix)
	assert.Equal(t, DefaultNonceWindow, ledger.window)
}

func TestCacheNonceLedger_ExistsNonce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		first  [3]string
		second [3]string
		ts1    int64
		ts2    int64
		replay bool
	}{
		{
			name:   "same tuple is a replay",
			first:  [3]string{"N1", "C1", ""},
			second: [3]string{"N1", "C1", ""},
			ts1:    1700000000, ts2: 1700000000,
			replay: true,
		},
		{
			name:   "different client",
			first:  [3]string{"N1", "C1", ""},
			second: [3]string{"N1", "C2", ""},
			ts1:    1700000000, ts2: 1700000000,
		},
		{
			name:   "different token",
			first:  [3]string{"N1", "C1", "T1"},
			second: [3]string{"N1", "C1", "T2"},
			ts1:    1700000000, ts2: 1700000000,
		},
		{
			name:   "different timestamp",
			first:  [3]string{"N1", "C1", ""},
			second: [3]string{"N1", "C1", ""},
			ts1:    1700000000, ts2: 1700000001,
		},
		{
			name:   "field boundaries are not ambiguous",
			first:  [3]string{"ab", "c", ""},
			second: [3]string{"a", "bc", ""},
			ts1:    1700000000, ts2: 1700000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			cache := NewMemoryCache()
			defer cache.Close()
			ledger := NewCacheNonceLedger(cache, "", time.Hour)

			exists, err := ledger.ExistsNonce(ctx, tt.first[0], tt.first[1], tt.first[2], tt.ts1)
			require.NoError(t, err)
			require.False(t, exists)

			exists, err = ledger.ExistsNonce(ctx, tt.second[0], tt.second[1], tt.second[2], tt.ts2)
			require.NoError(t, err)
			assert.Equal(t, tt.replay, exists)
		})
	}
}

func TestCacheNonceLedger_Window(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		clock := newFakeClock()
		cache := NewMemoryCache(WithClock(clock.Now))
		defer cache.Close()
		ledger := NewCacheNonceLedger(cache, "", time.Minute)

		exists, err := ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		require.False(t, exists)

		clock.Advance(59 * time.Second)
		exists, err = ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		assert.True(t, exists)

		clock.Advance(time.Second)
		exists, err = ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		assert.False(t, exists, "tuple must be accepted again after the window")
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache, mr := newTestRedisCache(t)
		ledger := NewCacheNonceLedger(cache, "", time.Minute)

		exists, err := ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		require.False(t, exists)

		exists, err = ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		assert.True(t, exists)

		mr.FastForward(time.Minute)
		exists, err = ledger.ExistsNonce(ctx, "N1", "C1", "", 1700000000)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCacheNonceLedger_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache, _ := newTestRedisCache(t)
	ledger := NewCacheNonceLedger(cache, "", time.Minute)

	var accepted atomic.Int32
	var g errgroup.Group
	for range 20 {
		g.Go(func() error {
			exists, err := ledger.ExistsNonce(ctx, "N1", "C1", "T1", 1700000000)
			if err == nil && !exists {
				accepted.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), accepted.Load())
}

func TestCacheNonceLedger_BackendError(t *testing.T) {
	t.Parallel()
	cache, mr := newTestRedisCache(t)
	mr.Close()
	ledger := NewCacheNonceLedger(cache, "", time.Minute)

	_, err := ledger.ExistsNonce(context.Background(), "N1", "C1", "", 1700000000)
	assert.Error(t, err)
}

func TestCacheNonceLedger_FieldBoundaries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()
	ledger := NewCacheNonceLedger(cache, "", time.Hour)

	// Moving a NUL-separated segment between nonce and client must not map
	// to the same record.
	seen, err := ledger.ExistsNonce(ctx, "a\x00b", "c", "", 1700000000)
	require.NoError(t, err)
	require.False(t, seen)

	seen, err = ledger.ExistsNonce(ctx, "a", "b\x00c", "", 1700000000)
	require.NoError(t, err)
	assert.False(t, seen)

	assert.NotEqual(t,
		ledger.nonceKey("n", "c", "tok", 1),
		ledger.nonceKey("n", "ct", "ok", 1),
	)
}
