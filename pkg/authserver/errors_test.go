// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := ErrInvalidToken.WithHint("gone").WithWrap(cause)

	assert.Equal(t, "invalid_token: gone", err.Error())
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidVerifier)
	assert.Equal(t, "gone", err.Body().Get("error_description"))

	// The sentinel is left untouched.
	assert.Equal(t, "The token is invalid or has expired.", ErrInvalidToken.Description)
	assert.NoError(t, ErrInvalidToken.Unwrap())

	wrapped := fmt.Errorf("exchange: %w", err)
	assert.Equal(t, "invalid_token", AsError(wrapped).Code)
}

func TestAsError(t *testing.T) {
	t.Parallel()

	e := AsError(errors.New("unexpected"))
	assert.Equal(t, "server_error", e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)

	assert.Same(t, ErrInvalidNonce, AsError(ErrInvalidNonce))
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantAuth   string
	}{
		{
			name:       "unauthorized advertises realm",
			err:        ErrInvalidSignature,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_signature",
			wantAuth:   `OAuth realm="Photos"`,
		},
		{
			name:       "bad request",
			err:        ErrDuplicatedParameter,
			wantStatus: http.StatusBadRequest,
			wantCode:   "duplicated_oauth_protocol_parameter",
		},
		{
			name:       "unknown error",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := ErrorResponse(tt.err, "Photos")
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantCode, resp.Body.Get("error"))
			assert.Equal(t, tt.wantAuth, resp.Header.Get("WWW-Authenticate"))
		})
	}
}

func TestRedirectResponse(t *testing.T) {
	t.Parallel()

	resp, err := redirectResponse("https://client.example/cb?state=1", ErrAccessDenied.Body())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Contains(t, resp.Location(), "state=1")
	assert.Contains(t, resp.Location(), "error=access_denied")

	_, err = redirectResponse("://bad", nil)
	assert.Error(t, err)

	assert.Empty(t, (&Response{}).Location())
}
