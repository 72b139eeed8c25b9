// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package signature implements the OAuth 1.0a signature base string and the
// HMAC-SHA1, RSA-SHA1 and PLAINTEXT signature methods (RFC 5849 section 3.4).
package signature

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by RFC 5849 for HMAC-SHA1 and RSA-SHA1
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"sort"
)

// Signature method names as sent in oauth_signature_method.
const (
	MethodHMACSHA1  = "HMAC-SHA1"
	MethodRSASHA1   = "RSA-SHA1"
	MethodPlaintext = "PLAINTEXT"
)

// ErrMismatch is returned when a signature does not verify.
var ErrMismatch = errors.New("signature mismatch")

// Credentials is the key material a method may need.
type Credentials struct {
	// ClientSecret is the client shared secret (HMAC-SHA1, PLAINTEXT).
	ClientSecret string

	// TokenSecret is the temporary or token credential secret; empty when the
	// request carries no token.
	TokenSecret string

	// RSAPublicKey verifies RSA-SHA1 signatures.
	RSAPublicKey *rsa.PublicKey

	// RSAPrivateKey produces RSA-SHA1 signatures. Only needed by signers.
	RSAPrivateKey *rsa.PrivateKey
}

// Method signs and verifies base strings for one oauth_signature_method.
type Method interface {
	// Name returns the oauth_signature_method value.
	Name() string

	// Sign returns the oauth_signature for baseString.
	Sign(baseString string, creds Credentials) (string, error)

	// Verify returns nil if signature is valid for baseString.
	Verify(baseString, signature string, creds Credentials) error
}

// HMACSHA1 implements the HMAC-SHA1 method (RFC 5849 section 3.4.2).
type HMACSHA1 struct{}

// Name implements Method.
func (HMACSHA1) Name() string { return MethodHMACSHA1 }

// Sign implements Method.
func (HMACSHA1) Sign(baseString string, creds Credentials) (string, error) {
	mac := hmac.New(sha1.New, []byte(signingKey(creds)))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify implements Method.
func (m HMACSHA1) Verify(baseString, signature string, creds Credentials) error {
	want, err := m.Sign(baseString, creds)
	if err != nil {
		return err
	}
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrMismatch
	}
	return nil
}

// RSASHA1 implements the RSA-SHA1 method (RFC 5849 section 3.4.3).
type RSASHA1 struct{}

// Name implements Method.
func (RSASHA1) Name() string { return MethodRSASHA1 }

// Sign implements Method.
func (RSASHA1) Sign(baseString string, creds Credentials) (string, error) {
	if creds.RSAPrivateKey == nil {
		return "", errors.New("RSA-SHA1 requires a private key to sign")
	}
	digest := sha1.Sum([]byte(baseString)) //nolint:gosec // required by RSA-SHA1
	sig, err := rsa.SignPKCS1v15(rand.Reader, creds.RSAPrivateKey, crypto.SHA1, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify implements Method.
func (RSASHA1) Verify(baseString, signature string, creds Credentials) error {
	if creds.RSAPublicKey == nil {
		return errors.New("client has no RSA public key")
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrMismatch
	}
	digest := sha1.Sum([]byte(baseString)) //nolint:gosec // required by RSA-SHA1
	if err := rsa.VerifyPKCS1v15(creds.RSAPublicKey, crypto.SHA1, digest[:], sig); err != nil {
		return ErrMismatch
	}
	return nil
}

// Plaintext implements the PLAINTEXT method (RFC 5849 section 3.4.4). It must
// only be used over TLS.
type Plaintext struct{}

// Name implements Method.
func (Plaintext) Name() string { return MethodPlaintext }

// Sign implements Method.
func (Plaintext) Sign(_ string, creds Credentials) (string, error) {
	return signingKey(creds), nil
}

// Verify implements Method.
func (Plaintext) Verify(_ string, signature string, creds Credentials) error {
	if subtle.ConstantTimeCompare([]byte(signingKey(creds)), []byte(signature)) != 1 {
		return ErrMismatch
	}
	return nil
}

func signingKey(creds Credentials) string {
	return Escape(creds.ClientSecret) + "&" + Escape(creds.TokenSecret)
}

// Registry maps oauth_signature_method values to implementations.
type Registry map[string]Method

// DefaultRegistry returns a registry with all three RFC 5849 methods.
func DefaultRegistry() Registry {
	return NewRegistry(HMACSHA1{}, RSASHA1{}, Plaintext{})
}

// NewRegistry returns a registry holding methods.
func NewRegistry(methods ...Method) Registry {
	r := make(Registry, len(methods))
	for _, m := range methods {
		r[m.Name()] = m
	}
	return r
}

// Lookup returns the method registered under name.
func (r Registry) Lookup(name string) (Method, bool) {
	m, ok := r[name]
	return m, ok
}

// Names returns the registered method names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRSAPublicKey decodes a PEM encoded PKIX or PKCS#1 public key, or the
// public key of a PEM encoded certificate.
func ParseRSAPublicKey(data string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, errors.New("no PEM data found")
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("invalid certificate: %w", err)
		}
		return asRSA(cert.PublicKey)
	default:
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("invalid public key: %w", err)
		}
		return asRSA(key)
	}
}

func asRSA(key any) (*rsa.PublicKey, error) {
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, not RSA", key)
	}
	return rsaKey, nil
}
