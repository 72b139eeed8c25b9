// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/authserver/storage/mocks"
)

func TestCacheCredentialStore_CacheErrors(t *testing.T) {
	t.Parallel()

	errBackend := errors.New("backend down")

	t.Run("authorize lost race", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		store := storage.NewCacheCredentialStore(cache, "", nil)

		cache.EXPECT().Get(gomock.Any(), "temporary_credential:T1").
			Return([]byte(`{"oauth_token":"T1","client_id":"c"}`), nil)
		cache.EXPECT().CompareAndSwap(gomock.Any(), "temporary_credential:T1", gomock.Any(), gomock.Any(), time.Hour).
			Return(false, nil)

		_, err := store.AuthorizeTemporaryCredential(context.Background(), "T1", "V1", "U1", time.Hour)
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("get failure is not a miss", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		store := storage.NewCacheCredentialStore(cache, "", nil)

		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errBackend)

		_, err := store.GetTemporaryCredential(context.Background(), "T1")
		require.ErrorIs(t, err, errBackend)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("create failure", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		store := storage.NewCacheCredentialStore(cache, "", nil)

		cache.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), time.Hour).Return(false, errBackend)

		err := store.CreateTemporaryCredential(context.Background(), &storage.TemporaryCredential{Token: "T1", ClientID: "c"}, time.Hour)
		assert.ErrorIs(t, err, errBackend)
	})
}
