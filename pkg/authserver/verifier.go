// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"fmt"

	"github.com/stacklok/oauth1d/pkg/authserver/signature"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
)

// SignatureVerifier checks request signatures. The server depends only on
// this interface; NewSignatureVerifier adapts the signature package.
type SignatureVerifier interface {
	// Supports reports whether method is an accepted oauth_signature_method.
	Supports(method string) bool

	// VerifySignature returns nil if req is signed by client. tokenSecret is
	// the secret of the credential named by oauth_token, or "".
	VerifySignature(req *Request, client *storage.Client, tokenSecret string) error
}

type registryVerifier struct {
	methods signature.Registry
}

// NewSignatureVerifier returns a SignatureVerifier accepting the methods in
// registry. A nil registry accepts all three RFC 5849 methods.
func NewSignatureVerifier(registry signature.Registry) SignatureVerifier {
	if registry == nil {
		registry = signature.DefaultRegistry()
	}
	return &registryVerifier{methods: registry}
}

func (v *registryVerifier) Supports(method string) bool {
	_, ok := v.methods.Lookup(method)
	return ok
}

func (v *registryVerifier) VerifySignature(req *Request, client *storage.Client, tokenSecret string) error {
	method, ok := v.methods.Lookup(req.SignatureMethod())
	if !ok {
		return fmt.Errorf("unsupported signature method %q", req.SignatureMethod())
	}

	creds := signature.Credentials{
		ClientSecret: client.Secret,
		TokenSecret:  tokenSecret,
	}
	if method.Name() == signature.MethodRSASHA1 {
		if client.RSAPublicKey == "" {
			return fmt.Errorf("client %q has no RSA public key", client.ID)
		}
		key, err := signature.ParseRSAPublicKey(client.RSAPublicKey)
		if err != nil {
			return fmt.Errorf("client %q RSA public key: %w", client.ID, err)
		}
		creds.RSAPublicKey = key
	}

	baseString, err := signature.BaseString(req.Method, req.URI, req.Params())
	if err != nil {
		return err
	}
	return method.Verify(baseString, req.Signature(), creds)
}
