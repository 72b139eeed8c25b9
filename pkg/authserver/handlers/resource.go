// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stacklok/oauth1d/pkg/authserver"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
)

type contextKey struct{}

// TokenCredentialFromContext returns the credential stored by
// RequireTokenCredential.
func TokenCredentialFromContext(ctx context.Context) (*storage.TokenCredential, bool) {
	cred, ok := ctx.Value(contextKey{}).(*storage.TokenCredential)
	return cred, ok
}

// RequireTokenCredential rejects requests that are not signed with a valid
// token credential and passes the credential to next through the context.
func (h *Handler) RequireTokenCredential(next http.Handler) http.Handler {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		req, err := h.newRequest(w, r)
		if err != nil {
			return err
		}
		cred, err := h.server.ValidateProtectedResourceRequest(r.Context(), req)
		if err != nil {
			return err
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, cred)))
		return nil
	})
}

// IdentityHandler handles GET /oauth/identity.
func (*Handler) IdentityHandler(w http.ResponseWriter, r *http.Request) error {
	cred, ok := TokenCredentialFromContext(r.Context())
	if !ok {
		return authserver.ErrInvalidToken
	}
	writeResponse(w, &authserver.Response{
		Status: http.StatusOK,
		Body: url.Values{
			"client_id": {cred.ClientID},
			"user_id":   {cred.UserID},
		},
	})
	return nil
}

// RevokeHandler handles POST /oauth/revoke by revoking the signing credential.
func (h *Handler) RevokeHandler(w http.ResponseWriter, r *http.Request) error {
	cred, ok := TokenCredentialFromContext(r.Context())
	if !ok {
		return authserver.ErrInvalidToken
	}
	if err := h.server.RevokeTokenCredential(r.Context(), cred.Token); err != nil {
		return err
	}
	writeResponse(w, &authserver.Response{Status: http.StatusNoContent})
	return nil
}
