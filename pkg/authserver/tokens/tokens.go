// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package tokens generates the random identifiers, secrets and verifiers
// handed out by the authorization server.
package tokens

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Alphabet is the set of symbols used for generated values. Every symbol is
// unreserved in RFC 3986, so values never need percent-encoding.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// MinLength is the shortest value the generator will produce.
	MinLength = 36

	// DefaultTokenLength is the length of oauth_token values.
	DefaultTokenLength = 42

	// DefaultSecretLength is the length of oauth_token_secret values.
	DefaultSecretLength = 48

	// DefaultVerifierLength is the length of oauth_verifier values.
	DefaultVerifierLength = 36
)

// rejectAbove is the largest multiple of len(Alphabet) that fits in a byte.
// Bytes at or above it are discarded so every symbol is equally likely.
const rejectAbove = 256 - 256%len(Alphabet)

// Generator produces token pairs and verifiers.
type Generator interface {
	// NewTokenPair returns a fresh oauth_token and oauth_token_secret.
	NewTokenPair() (token, secret string, err error)

	// NewVerifier returns a fresh oauth_verifier.
	NewVerifier() (string, error)
}

// RandomGenerator draws values from crypto/rand.
type RandomGenerator struct {
	tokenLength    int
	secretLength   int
	verifierLength int
	source         io.Reader
}

// Option configures a RandomGenerator.
type Option func(*RandomGenerator)

// WithTokenLength sets the oauth_token length.
func WithTokenLength(n int) Option {
	return func(g *RandomGenerator) {
		g.tokenLength = n
	}
}

// WithSecretLength sets the oauth_token_secret length.
func WithSecretLength(n int) Option {
	return func(g *RandomGenerator) {
		g.secretLength = n
	}
}

// WithVerifierLength sets the oauth_verifier length.
func WithVerifierLength(n int) Option {
	return func(g *RandomGenerator) {
		g.verifierLength = n
	}
}

// NewRandomGenerator creates a RandomGenerator. Lengths below MinLength are rejected.
func NewRandomGenerator(opts ...Option) (*RandomGenerator, error) {
	g := &RandomGenerator{
		tokenLength:    DefaultTokenLength,
		secretLength:   DefaultSecretLength,
		verifierLength: DefaultVerifierLength,
		source:         rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}

	for name, n := range map[string]int{
		"token":    g.tokenLength,
		"secret":   g.secretLength,
		"verifier": g.verifierLength,
	} {
		if n < MinLength {
			return nil, fmt.Errorf("%s length %d is below the minimum of %d", name, n, MinLength)
		}
	}
	return g, nil
}

// NewTokenPair returns a fresh oauth_token and oauth_token_secret.
func (g *RandomGenerator) NewTokenPair() (string, string, error) {
	token, err := g.generate(g.tokenLength)
	if err != nil {
		return "", "", err
	}
	secret, err := g.generate(g.secretLength)
	if err != nil {
		return "", "", err
	}
	return token, secret, nil
}

// NewVerifier returns a fresh oauth_verifier.
func (g *RandomGenerator) NewVerifier() (string, error) {
	return g.generate(g.verifierLength)
}

func (g *RandomGenerator) generate(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4)
	for len(out) < n {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

var _ Generator = (*RandomGenerator)(nil)
