// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"errors"
	"net/http"
	"net/url"
)

// Error is an OAuth 1.0a protocol error. It is rendered to the client as a
// form-encoded body with error and error_description.
type Error struct {
	// Code is the machine readable error code, e.g. "invalid_signature".
	Code string

	// Description is a human readable explanation.
	Description string

	// Status is the HTTP status to respond with.
	Status int

	cause error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code, so errors.Is(err, ErrInvalidToken)
// works on copies carrying a hint or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithHint returns a copy of e with description set.
func (e *Error) WithHint(description string) *Error {
	cp := *e
	cp.Description = description
	return &cp
}

// WithWrap returns a copy of e that wraps cause.
func (e *Error) WithWrap(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// Body returns the form-encoded error body.
func (e *Error) Body() url.Values {
	body := url.Values{"error": {e.Code}}
	if e.Description != "" {
		body.Set("error_description", e.Description)
	}
	return body
}

func newError(code string, status int, description string) *Error {
	return &Error{Code: code, Status: status, Description: description}
}

// Protocol errors returned by Server.
var (
	ErrInvalidRequest = newError("invalid_request", http.StatusBadRequest,
		"The request is malformed.")
	ErrMissingRequiredParameter = newError("missing_required_parameter", http.StatusBadRequest,
		"A required parameter is missing.")
	ErrDuplicatedParameter = newError("duplicated_oauth_protocol_parameter", http.StatusBadRequest,
		"An OAuth protocol parameter was sent more than once.")
	ErrUnsupportedSignatureMethod = newError("unsupported_signature_method", http.StatusBadRequest,
		"The signature method is not supported.")
	ErrInvalidClient = newError("invalid_client", http.StatusUnauthorized,
		"The client could not be identified.")
	ErrInvalidSignature = newError("invalid_signature", http.StatusUnauthorized,
		"The request signature is invalid.")
	ErrInvalidNonce = newError("invalid_nonce", http.StatusUnauthorized,
		"The nonce has already been used.")
	ErrInvalidToken = newError("invalid_token", http.StatusUnauthorized,
		"The token is invalid or has expired.")
	ErrInvalidVerifier = newError("invalid_verifier", http.StatusUnauthorized,
		"The verifier is invalid.")
	ErrAccessDenied = newError("access_denied", http.StatusUnauthorized,
		"The resource owner denied the request.")
	ErrUpstreamUnavailable = newError("temporarily_unavailable", http.StatusServiceUnavailable,
		"A backing store is unavailable. Retry later.")
	ErrServerError = newError("server_error", http.StatusInternalServerError,
		"The server encountered an unexpected condition.")
)

// AsError converts err to an *Error. Anything that is not already a protocol
// error becomes ErrServerError wrapping err.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrServerError.WithWrap(err)
}
