// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"net/http"
	"strings"
)

// DefaultUserHeader is the header an authenticating proxy sets to the user ID.
const DefaultUserHeader = "X-Forwarded-User"

// UserResolver identifies the resource owner behind an authorization request.
// An empty ID with a nil error means nobody is signed in.
type UserResolver interface {
	ResolveUser(r *http.Request) (string, error)
}

// HeaderUserResolver trusts a request header set by a reverse proxy.
type HeaderUserResolver struct {
	header string
}

// NewHeaderUserResolver creates a HeaderUserResolver reading header.
func NewHeaderUserResolver(header string) *HeaderUserResolver {
	if header == "" {
		header = DefaultUserHeader
	}
	return &HeaderUserResolver{header: header}
}

// ResolveUser returns the trimmed header value.
func (h *HeaderUserResolver) ResolveUser(r *http.Request) (string, error) {
	return strings.TrimSpace(r.Header.Get(h.header)), nil
}

var _ UserResolver = (*HeaderUserResolver)(nil)
