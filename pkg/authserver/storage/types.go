// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package storage provides the storage contracts and implementations used by
// the OAuth 1.0a authorization server: a TTL cache, the temporary credential
// store and nonce ledger built on top of it, and the durable client directory
// and token credential store.
package storage

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks -source=types.go Cache,ClientStore,TemporaryCredentialStore,NonceLedger,TokenCredentialStore,Storage

import (
	"context"
	"time"
)

// DefaultTemporaryCredentialKeyPrefix namespaces temporary credentials in a shared cache.
const DefaultTemporaryCredentialKeyPrefix = "temporary_credential:"

// DefaultNonceKeyPrefix namespaces nonce records in a shared cache.
const DefaultNonceKeyPrefix = "nonce:"

// Client is a registered OAuth 1.0a client (consumer).
type Client struct {
	// ID is the client identifier sent as oauth_consumer_key.
	ID string `json:"id"`

	// Secret is the shared secret used by HMAC-SHA1 and PLAINTEXT.
	Secret string `json:"secret,omitempty"`

	// RSAPublicKey is a PEM encoded public key used by RSA-SHA1.
	RSAPublicKey string `json:"rsa_public_key,omitempty"`

	// Name is a human readable label shown on the consent screen.
	Name string `json:"name,omitempty"`

	// DefaultRedirectURI is used when a client sends oauth_callback=oob but
	// still expects a redirect. Optional.
	DefaultRedirectURI string `json:"default_redirect_uri,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TemporaryCredential is the short-lived token pair that carries a client
// through the authorization step.
type TemporaryCredential struct {
	Token       string `json:"oauth_token"`
	TokenSecret string `json:"oauth_token_secret"`
	ClientID    string `json:"client_id"`

	// CallbackURI is the oauth_callback supplied in step 1, or "oob".
	CallbackURI string `json:"oauth_callback,omitempty"`

	// Verifier and UserID are attached once the resource owner approves.
	Verifier string `json:"oauth_verifier,omitempty"`
	UserID   string `json:"user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAuthorized reports whether a verifier has been attached.
func (c *TemporaryCredential) IsAuthorized() bool {
	return c.Verifier != ""
}

// TokenCredential is the long-lived token pair issued after a successful
// exchange. It is never mutated once created.
type TokenCredential struct {
	// ID is the persisted handle assigned by the store.
	ID          string    `json:"id"`
	Token       string    `json:"oauth_token"`
	TokenSecret string    `json:"oauth_token_secret"`
	ClientID    string    `json:"client_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cache is a key-value store with per-key TTL. Implementations must be safe
// for concurrent use and must make SetNX, CompareAndSwap and CompareAndDelete
// atomic with respect to each other.
type Cache interface {
	// Get returns the value for key, or ErrNotFound when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value only if key is absent. It reports whether the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// CompareAndSwap replaces the value of key with value only if the current
	// value equals expected. A ttl of zero keeps the remaining lifetime.
	CompareAndSwap(ctx context.Context, key string, expected, value []byte, ttl time.Duration) (bool, error)

	// CompareAndDelete removes key only if its current value equals expected.
	CompareAndDelete(ctx context.Context, key string, expected []byte) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// ClientStore is the client directory.
type ClientStore interface {
	// GetClient returns the client with the given identifier or ErrNotFound.
	GetClient(ctx context.Context, id string) (*Client, error)

	// RegisterClient adds a client. Returns ErrAlreadyExists for a duplicate ID.
	RegisterClient(ctx context.Context, client *Client) error

	// ListClients returns all registered clients ordered by ID.
	ListClients(ctx context.Context) ([]*Client, error)

	// DeleteClient removes a client or returns ErrNotFound.
	DeleteClient(ctx context.Context, id string) error
}

// TemporaryCredentialStore stores temporary credentials with a TTL.
type TemporaryCredentialStore interface {
	// CreateTemporaryCredential stores cred for ttl. Returns ErrAlreadyExists
	// if a credential with the same token is already stored.
	CreateTemporaryCredential(ctx context.Context, cred *TemporaryCredential, ttl time.Duration) error

	// GetTemporaryCredential returns the credential or ErrNotFound.
	GetTemporaryCredential(ctx context.Context, token string) (*TemporaryCredential, error)

	// AuthorizeTemporaryCredential atomically attaches verifier and userID.
	// A ttl of zero keeps the remaining lifetime.
	AuthorizeTemporaryCredential(
		ctx context.Context, token, verifier, userID string, ttl time.Duration,
	) (*TemporaryCredential, error)

	// ConsumeTemporaryCredential atomically deletes the credential if the
	// stored verifier equals verifier and returns it. Only one concurrent
	// caller can succeed; the others get ErrNotFound.
	ConsumeTemporaryCredential(ctx context.Context, token, verifier string) (*TemporaryCredential, error)

	// RestoreTemporaryCredential re-inserts a consumed credential for the rest
	// of its original lifetime. Used to roll back a failed exchange.
	RestoreTemporaryCredential(ctx context.Context, cred *TemporaryCredential) error

	// DeleteTemporaryCredential removes the credential. Missing is not an error.
	DeleteTemporaryCredential(ctx context.Context, token string) error
}

// NonceLedger records (nonce, client, token, timestamp) tuples to detect replays.
type NonceLedger interface {
	// ExistsNonce returns true when the tuple was already recorded within the
	// replay window. Otherwise it records the tuple and returns false.
	ExistsNonce(ctx context.Context, nonce, clientID, token string, timestamp int64) (bool, error)
}

// TokenCredentialStore persists token credentials durably.
type TokenCredentialStore interface {
	// CreateTokenCredential persists cred and sets cred.ID to the stored handle.
	CreateTokenCredential(ctx context.Context, cred *TokenCredential) error

	// GetTokenCredential returns the credential for token or ErrNotFound.
	GetTokenCredential(ctx context.Context, token string) (*TokenCredential, error)

	// DeleteTokenCredential revokes the credential or returns ErrNotFound.
	DeleteTokenCredential(ctx context.Context, token string) error
}

// Storage is the storage capability injected into the authorization server.
type Storage interface {
	ClientStore
	TemporaryCredentialStore
	NonceLedger
	TokenCredentialStore

	// Health checks every backend the storage depends on.
	Health(ctx context.Context) error

	// Settings reports the key prefix and nonce window in force.
	Settings() Settings

	// Close releases every backend.
	Close() error
}
