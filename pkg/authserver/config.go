// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"fmt"
	"time"

	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/logger"
)

// Defaults for Config.
const (
	DefaultNonceExpiresIn               = 24 * time.Hour
	DefaultTemporaryCredentialExpiresIn = 24 * time.Hour
	DefaultTimestampSkew                = 5 * time.Minute
	DefaultRealm                        = "oauth1d"
)

// Config is the pure configuration for the OAuth 1.0a authorization server.
// All values must be fully resolved (no file paths, no env vars).
type Config struct {
	// NonceExpiresIn is the replay window: how long a nonce tuple is remembered.
	// If zero, defaults to 24 hours.
	NonceExpiresIn time.Duration

	// TemporaryCredentialExpiresIn is the lifetime of temporary credentials.
	// If zero, defaults to 24 hours.
	TemporaryCredentialExpiresIn time.Duration

	// TemporaryCredentialKeyPrefix namespaces temporary credentials in the cache.
	// If empty, defaults to "temporary_credential:".
	TemporaryCredentialKeyPrefix string

	// TimestampSkew bounds how far oauth_timestamp may be from the server
	// clock. Zero disables the check; DefaultConfig sets five minutes.
	TimestampSkew time.Duration

	// PreserveTemporaryCredentialTTL keeps the remaining lifetime when a
	// credential is authorized instead of granting a fresh full lifetime.
	PreserveTemporaryCredentialTTL bool

	// Realm is advertised in WWW-Authenticate on 401 responses.
	Realm string
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	cfg := Config{TimestampSkew: DefaultTimestampSkew}
	cfg.applyDefaults()
	return cfg
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	logger.Debugw("validating authserver config",
		"nonceExpiresIn", c.NonceExpiresIn,
		"temporaryCredentialExpiresIn", c.TemporaryCredentialExpiresIn,
	)

	if c.NonceExpiresIn < 0 {
		return fmt.Errorf("nonce expiry must not be negative")
	}
	if c.TemporaryCredentialExpiresIn < 0 {
		return fmt.Errorf("temporary credential expiry must not be negative")
	}
	if c.TimestampSkew < 0 {
		return fmt.Errorf("timestamp skew must not be negative")
	}
	// A nonce forgotten while its timestamp is still acceptable could be replayed.
	if c.TimestampSkew > 0 && c.NonceExpiresIn > 0 && c.NonceExpiresIn < c.TimestampSkew {
		return fmt.Errorf("nonce expiry (%s) must be at least the timestamp skew (%s)",
			c.NonceExpiresIn, c.TimestampSkew)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.NonceExpiresIn == 0 {
		c.NonceExpiresIn = DefaultNonceExpiresIn
		logger.Debugw("applied default nonce expiry", "duration", c.NonceExpiresIn)
	}
	if c.TemporaryCredentialExpiresIn == 0 {
		c.TemporaryCredentialExpiresIn = DefaultTemporaryCredentialExpiresIn
		logger.Debugw("applied default temporary credential expiry", "duration", c.TemporaryCredentialExpiresIn)
	}
	if c.TemporaryCredentialKeyPrefix == "" {
		c.TemporaryCredentialKeyPrefix = storage.DefaultTemporaryCredentialKeyPrefix
	}
	if c.Realm == "" {
		c.Realm = DefaultRealm
	}
}

// StorageOptions returns the storage options that must agree with c: the
// temporary credential key prefix and the nonce replay window.
func (c Config) StorageOptions() []storage.Option {
	c.applyDefaults()
	return []storage.Option{
		storage.WithTemporaryCredentialKeyPrefix(c.TemporaryCredentialKeyPrefix),
		storage.WithNonceWindow(c.NonceExpiresIn),
	}
}
