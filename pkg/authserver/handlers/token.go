// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"net/http"
)

// InitiateHandler handles POST /oauth/initiate.
func (h *Handler) InitiateHandler(w http.ResponseWriter, r *http.Request) error {
	req, err := h.newRequest(w, r)
	if err != nil {
		return err
	}
	cred, err := h.server.CreateTemporaryCredential(r.Context(), req)
	if err != nil {
		return err
	}
	writeResponse(w, h.server.CreateTemporaryCredentialResponse(cred))
	return nil
}

// TokenHandler handles POST /oauth/token.
func (h *Handler) TokenHandler(w http.ResponseWriter, r *http.Request) error {
	req, err := h.newRequest(w, r)
	if err != nil {
		return err
	}
	cred, err := h.server.CreateTokenCredential(r.Context(), req)
	if err != nil {
		return err
	}
	writeResponse(w, h.server.CreateTokenCredentialResponse(cred))
	return nil
}
