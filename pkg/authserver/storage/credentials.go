// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CacheCredentialStore implements TemporaryCredentialStore on top of a Cache.
// Each credential is stored as JSON under keyPrefix + token.
type CacheCredentialStore struct {
	cache     Cache
	keyPrefix string
	now       func() time.Time
}

// NewCacheCredentialStore creates a CacheCredentialStore. An empty keyPrefix
// falls back to DefaultTemporaryCredentialKeyPrefix and a nil now to time.Now.
func NewCacheCredentialStore(cache Cache, keyPrefix string, now func() time.Time) *CacheCredentialStore {
	if keyPrefix == "" {
		keyPrefix = DefaultTemporaryCredentialKeyPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &CacheCredentialStore{cache: cache, keyPrefix: keyPrefix, now: now}
}

func (s *CacheCredentialStore) key(token string) string {
	return s.keyPrefix + token
}

// CreateTemporaryCredential stores cred for ttl if no credential with the
// same token exists.
func (s *CacheCredentialStore) CreateTemporaryCredential(
	ctx context.Context, cred *TemporaryCredential, ttl time.Duration,
) error {
	if cred == nil || cred.Token == "" {
		return errors.New("temporary credential with a token is required")
	}
	if ttl <= 0 {
		return errors.New("temporary credential TTL must be positive")
	}

	now := s.now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal temporary credential: %w", err)
	}

	ok, err := s.cache.SetNX(ctx, s.key(cred.Token), data, ttl)
	if err != nil {
		return fmt.Errorf("failed to store temporary credential: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: temporary credential", ErrAlreadyExists)
	}
	return nil
}

// GetTemporaryCredential returns the credential for token.
func (s *CacheCredentialStore) GetTemporaryCredential(
	ctx context.Context, token string,
) (*TemporaryCredential, error) {
	cred, _, err := s.load(ctx, token)
	return cred, err
}

// load returns the decoded credential together with the raw bytes, which
// callers pass back as the expected value of a compare-and-swap.
func (s *CacheCredentialStore) load(ctx context.Context, token string) (*TemporaryCredential, []byte, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: temporary credential", ErrNotFound)
	}

	data, err := s.cache.Get(ctx, s.key(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: temporary credential", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get temporary credential: %w", err)
	}

	var cred TemporaryCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal temporary credential: %w", err)
	}
	return &cred, data, nil
}

// AuthorizeTemporaryCredential attaches verifier and userID with a
// compare-and-swap against the value that was read. A ttl of zero keeps the
// remaining lifetime.
func (s *CacheCredentialStore) AuthorizeTemporaryCredential(
	ctx context.Context, token, verifier, userID string, ttl time.Duration,
) (*TemporaryCredential, error) {
	if verifier == "" {
		return nil, errors.New("verifier is required")
	}

	cred, current, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if cred.IsAuthorized() {
		return nil, ErrAlreadyAuthorized
	}

	cred.Verifier = verifier
	cred.UserID = userID
	if ttl > 0 {
		cred.ExpiresAt = s.now().UTC().Add(ttl)
	}

	updated, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal temporary credential: %w", err)
	}

	swapped, err := s.cache.CompareAndSwap(ctx, s.key(token), current, updated, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize temporary credential: %w", err)
	}
	if !swapped {
		return nil, ErrConflict
	}
	return cred, nil
}

// ConsumeTemporaryCredential removes the credential if its stored verifier
// equals verifier. A mismatch leaves the credential in place.
func (s *CacheCredentialStore) ConsumeTemporaryCredential(
	ctx context.Context, token, verifier string,
) (*TemporaryCredential, error) {
	cred, current, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if !cred.IsAuthorized() || verifier == "" ||
		subtle.ConstantTimeCompare([]byte(cred.Verifier), []byte(verifier)) != 1 {
		return nil, ErrVerifierMismatch
	}

	deleted, err := s.cache.CompareAndDelete(ctx, s.key(token), current)
	if err != nil {
		return nil, fmt.Errorf("failed to consume temporary credential: %w", err)
	}
	if !deleted {
		// Another caller consumed or rewrote it between our read and delete.
		return nil, fmt.Errorf("%w: temporary credential", ErrNotFound)
	}
	return cred, nil
}

// RestoreTemporaryCredential puts back a consumed credential with whatever
// lifetime it had left. It is a no-op if the credential already expired or if
// the token was reused in the meantime.
func (s *CacheCredentialStore) RestoreTemporaryCredential(ctx context.Context, cred *TemporaryCredential) error {
	remaining := cred.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal temporary credential: %w", err)
	}
	if _, err := s.cache.SetNX(ctx, s.key(cred.Token), data, remaining); err != nil {
		return fmt.Errorf("failed to restore temporary credential: %w", err)
	}
	return nil
}

// DeleteTemporaryCredential removes the credential for token.
func (s *CacheCredentialStore) DeleteTemporaryCredential(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, s.key(token)); err != nil {
		return fmt.Errorf("failed to delete temporary credential: %w", err)
	}
	return nil
}

var _ TemporaryCredentialStore = (*CacheCredentialStore)(nil)
