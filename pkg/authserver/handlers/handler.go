// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stacklok/oauth1d/pkg/authserver"
)

// Handler provides HTTP handlers for the OAuth 1.0a endpoints.
type Handler struct {
	server       *authserver.Server
	publicURL    *url.URL
	userResolver UserResolver
	metrics      http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithPublicURL sets the externally visible base URL. Signatures are verified
// against it instead of the Host header, which matters behind a proxy.
func WithPublicURL(u *url.URL) Option {
	return func(h *Handler) {
		h.publicURL = u
	}
}

// WithUserResolver sets how the approving resource owner is identified.
func WithUserResolver(r UserResolver) Option {
	return func(h *Handler) {
		h.userResolver = r
	}
}

// WithMetricsHandler mounts a metrics handler at /metrics.
func WithMetricsHandler(m http.Handler) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a new Handler for server.
func NewHandler(server *authserver.Server, opts ...Option) *Handler {
	h := &Handler{
		server:       server,
		userResolver: NewHeaderUserResolver(DefaultUserHeader),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router with every endpoint registered.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		loggingMiddleware,
	)
	h.OAuthRoutes(r)
	r.Get("/healthz", h.HealthHandler)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics)
	}
	return r
}

// OAuthRoutes registers the OAuth endpoints on the provided router.
func (h *Handler) OAuthRoutes(r chi.Router) {
	r.Post("/oauth/initiate", h.handle(h.InitiateHandler))
	r.Get("/oauth/authorize", h.handle(h.AuthorizeInfoHandler))
	r.Post("/oauth/authorize", h.handle(h.AuthorizeHandler))
	r.Post("/oauth/token", h.handle(h.TokenHandler))

	r.Group(func(r chi.Router) {
		r.Use(h.RequireTokenCredential)
		r.Get("/oauth/identity", h.handle(h.IdentityHandler))
		r.Post("/oauth/revoke", h.handle(h.RevokeHandler))
	})
}

// HealthHandler reports 204 when storage is reachable and 503 otherwise.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.server.Health(r.Context()); err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
