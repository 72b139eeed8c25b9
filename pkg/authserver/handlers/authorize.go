// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/stacklok/oauth1d/pkg/authserver"
)

// Form fields of POST /oauth/authorize besides oauth_token.
const (
	// ParamAction is "approve" (default) or "deny".
	ParamAction = "action"

	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// AuthorizeInfoHandler handles GET /oauth/authorize. It describes the pending
// request so a consent UI can be shown by the caller.
func (h *Handler) AuthorizeInfoHandler(w http.ResponseWriter, r *http.Request) error {
	cred, err := h.server.CheckAuthorizationRequest(r.Context(), r.URL.Query().Get(authserver.ParamToken))
	if err != nil {
		return err
	}
	writeResponse(w, &authserver.Response{
		Status: http.StatusOK,
		Body: url.Values{
			authserver.ParamToken:       {cred.Token},
			authserver.ParamConsumerKey: {cred.ClientID},
			authserver.ParamCallback:    {cred.CallbackURI},
		},
	})
	return nil
}

// AuthorizeHandler handles POST /oauth/authorize. The signed-in resource
// owner approves or denies the temporary credential named by oauth_token.
func (h *Handler) AuthorizeHandler(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return authserver.ErrInvalidRequest.WithHint("The form body is malformed.").WithWrap(err)
	}
	ctx := r.Context()
	token := r.Form.Get(authserver.ParamToken)

	userID, err := h.userResolver.ResolveUser(r)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	if userID == "" {
		return authserver.ErrAccessDenied.WithHint("No resource owner is signed in.")
	}

	switch action := r.Form.Get(ParamAction); action {
	case ActionDeny:
		resp, err := h.server.DenyTemporaryCredential(ctx, token)
		if err != nil {
			return err
		}
		slog.Debug("resource owner denied access", "user_id", userID)
		writeResponse(w, resp)
		return nil

	case ActionApprove, "":
		cred, err := h.server.AuthorizeTemporaryCredential(ctx, token, userID)
		if err != nil {
			return err
		}
		resp, err := h.server.CreateAuthorizationResponse(ctx, cred)
		if err != nil {
			return err
		}
		writeResponse(w, resp)
		return nil

	default:
		return authserver.ErrInvalidRequest.WithHint(fmt.Sprintf("Unknown action %q.", action))
	}
}
