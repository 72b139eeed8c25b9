// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires cache and directory", func(t *testing.T) {
		t.Parallel()
		_, err := New(nil, NewMemoryDirectory())
		assert.Error(t, err)
		_, err = New(NewMemoryCache(), nil)
		assert.Error(t, err)
	})

	t.Run("composes", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cache := NewMemoryCache()
		stor, err := New(cache, NewMemoryDirectory(),
			WithTemporaryCredentialKeyPrefix("tc:"),
			WithNonceKeyPrefix("n:"),
			WithNonceWindow(time.Minute),
		)
		require.NoError(t, err)
		defer stor.Close()

		require.NoError(t, stor.Health(ctx))

		require.NoError(t, stor.CreateTemporaryCredential(ctx, &TemporaryCredential{Token: "T1"}, time.Hour))
		_, err = cache.Get(ctx, "tc:T1")
		assert.NoError(t, err)

		exists, err := stor.ExistsNonce(ctx, "N", "C", "", 1)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, stor.RegisterClient(ctx, &Client{ID: "C", Secret: "s"}))
		client, err := stor.GetClient(ctx, "C")
		require.NoError(t, err)
		assert.Equal(t, "s", client.Secret)
	})

	t.Run("health reports cache failure", func(t *testing.T) {
		t.Parallel()
		cache, mr := newTestRedisCache(t)
		stor, err := New(cache, NewMemoryDirectory())
		require.NoError(t, err)

		mr.Close()
		assert.ErrorContains(t, stor.Health(context.Background()), "cache unhealthy")
	})
}

func TestNew_Settings(t *testing.T) {
	t.Parallel()

	defaults, err := New(NewMemoryCache(), NewMemoryDirectory())
	require.NoError(t, err)
	defer defaults.Close()
	assert.Equal(t, DefaultSettings(), defaults.Settings())

	custom, err := New(NewMemoryCache(), NewMemoryDirectory(),
		WithTemporaryCredentialKeyPrefix("tc:"),
		WithNonceWindow(time.Hour),
	)
	require.NoError(t, err)
	defer custom.Close()
	assert.Equal(t, Settings{TemporaryCredentialKeyPrefix: "tc:", NonceWindow: time.Hour}, custom.Settings())
}
