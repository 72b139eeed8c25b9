// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stacklok/toolhive-core/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/oauth1d/pkg/authserver"
	"github.com/stacklok/oauth1d/pkg/authserver/signature"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	storagemocks "github.com/stacklok/oauth1d/pkg/authserver/storage/mocks"
)

const (
	testClientID     = "client-1"
	testClientSecret = "client-secret"
	testCallback     = "https://client.example/callback"
	testBaseURL      = "http://example.com"
)

var nonceCounter atomic.Int64

func newTestServer(t *testing.T) *authserver.Server {
	t.Helper()
	stor, err := storage.New(storage.NewMemoryCache(), storage.NewMemoryDirectory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stor.Close() })

	require.NoError(t, stor.RegisterClient(context.Background(), &storage.Client{
		ID:     testClientID,
		Secret: testClientSecret,
	}))

	s, err := authserver.NewServer(authserver.DefaultConfig(), stor)
	require.NoError(t, err)
	return s
}

// signedRequest builds an HTTP request signed with HMAC-SHA1. signedURI is the
// URI covered by the signature, target the URI the request is sent to.
func signedRequest(
	t *testing.T, method, signedURI, target string, extra url.Values, tokenSecret string, inBody bool,
) *http.Request {
	t.Helper()

	oauth := url.Values{
		authserver.ParamConsumerKey:     {testClientID},
		authserver.ParamSignatureMethod: {signature.MethodHMACSHA1},
		authserver.ParamTimestamp:       {fmt.Sprint(time.Now().Unix())},
		authserver.ParamNonce:           {fmt.Sprintf("n%d", nonceCounter.Add(1))},
	}
	for name, values := range extra {
		oauth[name] = values
	}

	u, err := url.Parse(signedURI)
	require.NoError(t, err)
	all := u.Query()
	for name, values := range oauth {
		all[name] = append(all[name], values...)
	}
	base, err := signature.BaseString(method, signedURI, all)
	require.NoError(t, err)
	sig, err := signature.HMACSHA1{}.Sign(base, signature.Credentials{
		ClientSecret: testClientSecret,
		TokenSecret:  tokenSecret,
	})
	require.NoError(t, err)
	oauth.Set(authserver.ParamSignature, sig)

	if inBody {
		req := httptest.NewRequest(method, target, strings.NewReader(oauth.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
		return req
	}
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", signature.AuthorizationHeader("", oauth))
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func formBody(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	assert.Equal(t, "application/x-www-form-urlencoded", rec.Header().Get("Content-Type"))
	values, err := url.ParseQuery(rec.Body.String())
	require.NoError(t, err)
	return values
}

func authorizeRequest(token, user, action string) *http.Request {
	form := url.Values{authserver.ParamToken: {token}}
	if action != "" {
		form.Set(ParamAction, action)
	}
	req := httptest.NewRequest(http.MethodPost, testBaseURL+"/oauth/authorize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != "" {
		req.Header.Set(DefaultUserHeader, user)
	}
	return req
}

func TestHandler_ThreeLeggedFlow(t *testing.T) {
	t.Parallel()
	routes := NewHandler(newTestServer(t)).Routes()

	// Temporary credential, parameters in the form body.
	uri := testBaseURL + "/oauth/initiate"
	rec := serve(routes, signedRequest(t, http.MethodPost, uri, uri,
		url.Values{authserver.ParamCallback: {testCallback}}, "", true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	temp := formBody(t, rec)
	assert.Equal(t, "true", temp.Get(authserver.ParamCallbackConfirmed))
	token, tokenSecret := temp.Get(authserver.ParamToken), temp.Get(authserver.ParamTokenSecret)

	// Pending authorization lookup.
	rec = serve(routes, httptest.NewRequest(http.MethodGet,
		testBaseURL+"/oauth/authorize?oauth_token="+url.QueryEscape(token), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	info := formBody(t, rec)
	assert.Equal(t, testClientID, info.Get(authserver.ParamConsumerKey))
	assert.Equal(t, testCallback, info.Get(authserver.ParamCallback))

	// Approval.
	rec = serve(routes, authorizeRequest(token, "U1", ActionApprove))
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, token, loc.Query().Get(authserver.ParamToken))
	verifier := loc.Query().Get(authserver.ParamVerifier)
	require.NotEmpty(t, verifier)

	// Token credential, parameters in the Authorization header.
	uri = testBaseURL + "/oauth/token"
	rec = serve(routes, signedRequest(t, http.MethodPost, uri, uri, url.Values{
		authserver.ParamToken:    {token},
		authserver.ParamVerifier: {verifier},
	}, tokenSecret, false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	access := formBody(t, rec)
	accessToken, accessSecret := access.Get(authserver.ParamToken), access.Get(authserver.ParamTokenSecret)

	// Protected resource.
	uri = testBaseURL + "/oauth/identity"
	rec = serve(routes, signedRequest(t, http.MethodGet, uri, uri,
		url.Values{authserver.ParamToken: {accessToken}}, accessSecret, false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	identity := formBody(t, rec)
	assert.Equal(t, "U1", identity.Get("user_id"))
	assert.Equal(t, testClientID, identity.Get("client_id"))

	// Revocation.
	uri = testBaseURL + "/oauth/revoke"
	rec = serve(routes, signedRequest(t, http.MethodPost, uri, uri,
		url.Values{authserver.ParamToken: {accessToken}}, accessSecret, false))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	uri = testBaseURL + "/oauth/identity"
	rec = serve(routes, signedRequest(t, http.MethodGet, uri, uri,
		url.Values{authserver.ParamToken: {accessToken}}, accessSecret, false))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `OAuth realm="oauth1d"`, rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "invalid_token", formBody(t, rec).Get("error"))
}

func initiate(t *testing.T, routes http.Handler, callback string) string {
	t.Helper()
	uri := testBaseURL + "/oauth/initiate"
	rec := serve(routes, signedRequest(t, http.MethodPost, uri, uri,
		url.Values{authserver.ParamCallback: {callback}}, "", false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return formBody(t, rec).Get(authserver.ParamToken)
}

func TestHandler_Authorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		user       string
		action     string
		wantStatus int
		wantError  string
	}{
		{name: "no user", user: "", wantStatus: http.StatusUnauthorized, wantError: "access_denied"},
		{name: "unknown action", user: "U1", action: "maybe", wantStatus: http.StatusBadRequest, wantError: "invalid_request"},
		{name: "deny", user: "U1", action: ActionDeny, wantStatus: http.StatusFound},
		{name: "approve by default", user: "U1", wantStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			routes := NewHandler(newTestServer(t)).Routes()
			token := initiate(t, routes, testCallback)

			rec := serve(routes, authorizeRequest(token, tt.user, tt.action))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, formBody(t, rec).Get("error"))
				return
			}

			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			if tt.action == ActionDeny {
				assert.Equal(t, "access_denied", loc.Query().Get("error"))
			} else {
				assert.NotEmpty(t, loc.Query().Get(authserver.ParamVerifier))
			}
		})
	}
}

func TestHandler_AuthorizeOutOfBand(t *testing.T) {
	t.Parallel()
	routes := NewHandler(newTestServer(t), WithUserResolver(NewHeaderUserResolver("X-User"))).Routes()
	token := initiate(t, routes, authserver.OutOfBand)

	req := authorizeRequest(token, "", "")
	req.Header.Set("X-User", "U1")
	rec := serve(routes, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, formBody(t, rec).Get(authserver.ParamVerifier))
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()
	routes := NewHandler(newTestServer(t)).Routes()
	uri := testBaseURL + "/oauth/initiate"

	t.Run("bad signature", func(t *testing.T) {
		t.Parallel()
		req := signedRequest(t, http.MethodPost, testBaseURL+"/elsewhere", uri,
			url.Values{authserver.ParamCallback: {testCallback}}, "", false)
		rec := serve(routes, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.Equal(t, "invalid_signature", formBody(t, rec).Get("error"))
	})

	t.Run("parameters in header and body", func(t *testing.T) {
		t.Parallel()
		req := signedRequest(t, http.MethodPost, uri, uri,
			url.Values{authserver.ParamCallback: {testCallback}}, "", false)
		form := url.Values{authserver.ParamCallback: {"oob"}}
		dup := httptest.NewRequest(http.MethodPost, uri, strings.NewReader(form.Encode()))
		dup.Header = req.Header.Clone()
		dup.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(routes, dup)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "duplicated_oauth_protocol_parameter", formBody(t, rec).Get("error"))
	})

	t.Run("body ignored without form content type", func(t *testing.T) {
		t.Parallel()
		req := signedRequest(t, http.MethodPost, uri, uri,
			url.Values{authserver.ParamCallback: {testCallback}}, "", true)
		req.Header.Set("Content-Type", "text/plain")
		rec := serve(routes, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_required_parameter", formBody(t, rec).Get("error"))
	})

	t.Run("unknown pending token", func(t *testing.T) {
		t.Parallel()
		rec := serve(routes, httptest.NewRequest(http.MethodGet, testBaseURL+"/oauth/authorize?oauth_token=nope", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_token", formBody(t, rec).Get("error"))
	})

	t.Run("unsigned protected resource", func(t *testing.T) {
		t.Parallel()
		rec := serve(routes, httptest.NewRequest(http.MethodGet, testBaseURL+"/oauth/identity", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_required_parameter", formBody(t, rec).Get("error"))
	})
}

func TestHandler_PublicURL(t *testing.T) {
	t.Parallel()
	public, err := url.Parse("https://auth.example.com/")
	require.NoError(t, err)
	routes := NewHandler(newTestServer(t), WithPublicURL(public)).Routes()

	req := signedRequest(t, http.MethodPost, "https://auth.example.com/oauth/initiate",
		"http://10.0.0.7:8080/oauth/initiate", url.Values{authserver.ParamCallback: {testCallback}}, "", false)
	rec := serve(routes, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		rec := serve(NewHandler(newTestServer(t)).Routes(),
			httptest.NewRequest(http.MethodGet, testBaseURL+"/healthz", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("storage down", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		stor := storagemocks.NewMockStorage(ctrl)
		stor.EXPECT().Settings().Return(storage.DefaultSettings())
		stor.EXPECT().Health(gomock.Any()).Return(errors.New("dial tcp: connection refused"))

		s, err := authserver.NewServer(authserver.DefaultConfig(), stor)
		require.NoError(t, err)
		rec := serve(NewHandler(s).Routes(), httptest.NewRequest(http.MethodGet, testBaseURL+"/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "refused")
	})
}

func TestHandler_Metrics(t *testing.T) {
	t.Parallel()
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("oauth1d_requests_total 1\n"))
	})

	rec := serve(NewHandler(newTestServer(t), WithMetricsHandler(metrics)).Routes(),
		httptest.NewRequest(http.MethodGet, testBaseURL+"/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oauth1d_requests_total")

	rec = serve(NewHandler(newTestServer(t)).Routes(),
		httptest.NewRequest(http.MethodGet, testBaseURL+"/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_NonProtocolErrors(t *testing.T) {
	t.Parallel()
	h := NewHandler(newTestServer(t))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "coded client error",
			err:        httperr.WithCode(errors.New("no such thing"), http.StatusNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "invalid_request",
		},
		{
			name:       "internal error is not leaked",
			err:        errors.New("password=hunter2"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := h.handle(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := serve(handler, httptest.NewRequest(http.MethodGet, testBaseURL+"/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, formBody(t, rec).Get("error"))
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestHeaderUserResolver(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, testBaseURL+"/", nil)
	req.Header.Set(DefaultUserHeader, "  alice ")

	user, err := NewHeaderUserResolver("").ResolveUser(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}
