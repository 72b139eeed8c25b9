// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stacklok/toolhive-core/httperr"

	"github.com/stacklok/oauth1d/pkg/authserver"
)

// maxFormBytes bounds the form body of OAuth requests.
const maxFormBytes = 64 << 10

const formContentType = "application/x-www-form-urlencoded"

// handlerWithError is an HTTP handler that can return an error.
type handlerWithError func(http.ResponseWriter, *http.Request) error

// handle converts errors returned by fn into OAuth error responses.
// Protocol errors are rendered as they are. Anything else is mapped with
// httperr.Code; 5xx details are logged and never sent to the client.
func (h *Handler) handle(fn handlerWithError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var oauthErr *authserver.Error
		if !errors.As(err, &oauthErr) {
			code := httperr.Code(err)
			if code < http.StatusInternalServerError {
				oauthErr = authserver.ErrInvalidRequest.WithHint(err.Error())
				oauthErr.Status = code
			} else {
				oauthErr = authserver.ErrServerError.WithWrap(err)
			}
		}

		if oauthErr.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"path", r.URL.Path,
				"request_id", middleware.GetReqID(r.Context()),
				"error", err,
			)
		} else {
			slog.Debug("request rejected",
				"path", r.URL.Path,
				"error", err,
			)
		}
		writeResponse(w, h.server.ErrorResponse(oauthErr))
	}
}

// newRequest converts r into an authserver.Request. The form body is only
// parsed for POSTs declared as application/x-www-form-urlencoded.
func (h *Handler) newRequest(w http.ResponseWriter, r *http.Request) (*authserver.Request, error) {
	var body url.Values
	if r.Method == http.MethodPost && isFormEncoded(r.Header.Get("Content-Type")) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			return nil, authserver.ErrInvalidRequest.WithHint("The form body is malformed.").WithWrap(err)
		}
		body = r.PostForm
	}
	return authserver.NewRequest(r.Method, h.requestURI(r), body, r.Header), nil
}

// requestURI returns the absolute URI the client signed.
func (h *Handler) requestURI(r *http.Request) string {
	if h.publicURL != nil {
		return strings.TrimSuffix(h.publicURL.String(), "/") + r.URL.RequestURI()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func isFormEncoded(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == formContentType
}

// writeResponse writes resp as a form-encoded, non-cacheable response.
func writeResponse(w http.ResponseWriter, resp *authserver.Response) {
	for name, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	if resp.Body == nil {
		w.WriteHeader(resp.Status)
		return
	}
	w.Header().Set("Content-Type", formContentType)
	w.WriteHeader(resp.Status)
	if _, err := w.Write([]byte(resp.Body.Encode())); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

// loggingMiddleware logs one line per request at debug level.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
