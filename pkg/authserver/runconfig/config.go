// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package runconfig holds the serializable configuration of the oauth1d
// server and converts it into the runtime configuration of authserver and
// its storage.
package runconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/stacklok/oauth1d/pkg/authserver"
	"github.com/stacklok/oauth1d/pkg/authserver/handlers"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
)

// EnvPrefix prefixes environment overrides, e.g. OAUTH1D_CACHE_REDIS_URL.
const EnvPrefix = "OAUTH1D"

// DefaultListenAddress is where the server listens when nothing is configured.
const DefaultListenAddress = ":8080"

// RunConfig is the file and environment representation of the server
// configuration. Durations are written as Go duration strings ("24h").
type RunConfig struct {
	// ListenAddress is the TCP address the HTTP server binds to.
	ListenAddress string `json:"listen_address" yaml:"listen_address" mapstructure:"listen_address"`

	// PublicURL is the externally visible base URL used when verifying
	// signatures. Optional; defaults to the request's scheme and host.
	PublicURL string `json:"public_url,omitempty" yaml:"public_url,omitempty" mapstructure:"public_url"`

	// Realm is advertised in WWW-Authenticate.
	Realm string `json:"realm,omitempty" yaml:"realm,omitempty" mapstructure:"realm"`

	// UserHeader names the header carrying the authenticated resource owner.
	UserHeader string `json:"user_header,omitempty" yaml:"user_header,omitempty" mapstructure:"user_header"`

	OAuth1   OAuth1Config   `json:"oauth1" yaml:"oauth1" mapstructure:"oauth1"`
	Cache    CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}

// OAuth1Config holds the protocol settings.
type OAuth1Config struct {
	NonceExpiresIn                 time.Duration `json:"nonce_expires_in" yaml:"nonce_expires_in" mapstructure:"nonce_expires_in"`
	TemporaryCredentialExpiresIn   time.Duration `json:"temporary_credential_expires_in" yaml:"temporary_credential_expires_in" mapstructure:"temporary_credential_expires_in"`
	TemporaryCredentialKeyPrefix   string        `json:"temporary_credential_key_prefix" yaml:"temporary_credential_key_prefix" mapstructure:"temporary_credential_key_prefix"`
	TimestampSkew                  time.Duration `json:"timestamp_skew" yaml:"timestamp_skew" mapstructure:"timestamp_skew"`
	PreserveTemporaryCredentialTTL bool          `json:"preserve_temporary_credential_ttl" yaml:"preserve_temporary_credential_ttl" mapstructure:"preserve_temporary_credential_ttl"`
}

// CacheConfig selects the cache backing temporary credentials and nonces.
type CacheConfig struct {
	// Type is "memory" or "redis".
	Type            string        `json:"type" yaml:"type" mapstructure:"type"`
	CleanupInterval time.Duration `json:"cleanup_interval,omitempty" yaml:"cleanup_interval,omitempty" mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `json:"redis" yaml:"redis" mapstructure:"redis"`
}

// RedisConfig configures the Redis cache.
type RedisConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`

	// PasswordFile is read at startup and overrides any password in URL.
	PasswordFile string `json:"password_file,omitempty" yaml:"password_file,omitempty" mapstructure:"password_file"`

	KeyPrefix string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty" mapstructure:"key_prefix"`
}

// DatabaseConfig configures the durable client directory.
type DatabaseConfig struct {
	// Path of the sqlite database. Empty keeps clients and token
	// credentials in memory.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// SetDefaults registers every key with its default on v, which also makes
// each key overridable from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", DefaultListenAddress)
	v.SetDefault("public_url", "")
	v.SetDefault("realm", authserver.DefaultRealm)
	v.SetDefault("user_header", handlers.DefaultUserHeader)
	v.SetDefault("oauth1.nonce_expires_in", authserver.DefaultNonceExpiresIn)
	v.SetDefault("oauth1.temporary_credential_expires_in", authserver.DefaultTemporaryCredentialExpiresIn)
	v.SetDefault("oauth1.temporary_credential_key_prefix", storage.DefaultTemporaryCredentialKeyPrefix)
	v.SetDefault("oauth1.timestamp_skew", authserver.DefaultTimestampSkew)
	v.SetDefault("oauth1.preserve_temporary_credential_ttl", false)
	v.SetDefault("cache.type", string(storage.TypeMemory))
	v.SetDefault("cache.cleanup_interval", storage.DefaultCleanupInterval)
	v.SetDefault("cache.redis.url", "")
	v.SetDefault("cache.redis.password_file", "")
	v.SetDefault("cache.redis.key_prefix", storage.DefaultRedisKeyPrefix)
	v.SetDefault("database.path", "")
	v.SetDefault("metrics.enabled", false)
}

// Load reads the configuration from path (optional) and OAUTH1D_*
// environment variables, then validates it.
func Load(v *viper.Viper, path string) (*RunConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &RunConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration without touching the filesystem or network.
func (c *RunConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("public_url must be an absolute http(s) URL, got %q", c.PublicURL)
		}
		if u.RawQuery != "" || u.Fragment != "" {
			return errors.New("public_url must not have a query or fragment")
		}
	}

	switch storage.Type(c.Cache.Type) {
	case storage.TypeMemory, "":
	case storage.TypeRedis:
		if c.Cache.Redis.URL == "" {
			return errors.New("cache.redis.url is required when cache.type is redis")
		}
	default:
		return fmt.Errorf("unknown cache.type %q (want memory or redis)", c.Cache.Type)
	}
	if c.Cache.CleanupInterval < 0 {
		return errors.New("cache.cleanup_interval must not be negative")
	}

	authCfg := c.authserverConfig()
	return authCfg.Validate()
}

func (c *RunConfig) authserverConfig() authserver.Config {
	return authserver.Config{
		NonceExpiresIn:                 c.OAuth1.NonceExpiresIn,
		TemporaryCredentialExpiresIn:   c.OAuth1.TemporaryCredentialExpiresIn,
		TemporaryCredentialKeyPrefix:   c.OAuth1.TemporaryCredentialKeyPrefix,
		TimestampSkew:                  c.OAuth1.TimestampSkew,
		PreserveTemporaryCredentialTTL: c.OAuth1.PreserveTemporaryCredentialTTL,
		Realm:                          c.Realm,
	}
}
