// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DefaultNonceWindow is how long a nonce tuple is remembered.
const DefaultNonceWindow = 24 * time.Hour

// CacheNonceLedger implements NonceLedger with Cache.SetNX, so the check and
// the record happen in one atomic step.
type CacheNonceLedger struct {
	cache     Cache
	keyPrefix string
	window    time.Duration
}

// NewCacheNonceLedger creates a CacheNonceLedger that remembers every tuple
// for window. Empty or zero arguments fall back to the defaults.
func NewCacheNonceLedger(cache Cache, keyPrefix string, window time.Duration) *CacheNonceLedger {
	if keyPrefix == "" {
		keyPrefix = DefaultNonceKeyPrefix
	}
	if window <= 0 {
		window = DefaultNonceWindow
	}
	return &CacheNonceLedger{cache: cache, keyPrefix: keyPrefix, window: window}
}

// nonceKey hashes the tuple to bound key size. Each field is length-prefixed
// so no nonce content can shift the boundary into the next field.
func (l *CacheNonceLedger) nonceKey(nonce, clientID, token string, timestamp int64) string {
	h := sha256.New()
	for _, part := range []string{nonce, clientID, token, strconv.FormatInt(timestamp, 10)} {
		h.Write([]byte(strconv.Itoa(len(part)) + ":"))
		h.Write([]byte(part))
	}
	return l.keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// ExistsNonce reports whether the tuple was seen within the window, and
// records it if it was not.
func (l *CacheNonceLedger) ExistsNonce(
	ctx context.Context, nonce, clientID, token string, timestamp int64,
) (bool, error) {
	if nonce == "" {
		return false, errors.New("nonce is required")
	}
	stored, err := l.cache.SetNX(ctx, l.nonceKey(nonce, clientID, token, timestamp), []byte("1"), l.window)
	if err != nil {
		return false, fmt.Errorf("failed to record nonce: %w", err)
	}
	return !stored, nil
}

var _ NonceLedger = (*CacheNonceLedger)(nil)
