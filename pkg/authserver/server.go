// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package authserver implements the server side of OAuth 1.0a three-legged
// authorization (RFC 5849).
//
// A Server issues temporary credentials to signed client requests, lets the
// resource owner attach a verifier to them, and exchanges verified temporary
// credentials for durable token credentials. Every signed request is checked
// against the nonce ledger so it can be accepted at most once.
//
// Transport is kept out of this package: callers build a Request from their
// inbound message and write the returned Response. The handlers package does
// this for net/http.
package authserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stacklok/oauth1d/pkg/authserver/signature"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/authserver/tokens"
	"github.com/stacklok/oauth1d/pkg/logger"
)

// Server is the OAuth 1.0a authorization state machine. It holds no mutable
// state of its own and is safe for concurrent use.
type Server struct {
	cfg      Config
	storage  storage.Storage
	tokens   tokens.Generator
	verifier SignatureVerifier
	observer Observer
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithTokenGenerator replaces the random token generator.
func WithTokenGenerator(g tokens.Generator) Option {
	return func(s *Server) {
		s.tokens = g
	}
}

// WithSignatureVerifier replaces the signature verifier.
func WithSignatureVerifier(v SignatureVerifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// WithClock overrides the time source used for timestamp checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithObserver registers an Observer for operation outcomes.
func WithObserver(o Observer) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a Server backed by stor.
func NewServer(cfg Config, stor storage.Storage, opts ...Option) (*Server, error) {
	if stor == nil {
		return nil, errors.New("storage is required")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := checkStorageSettings(cfg, stor.Settings()); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		storage:  stor,
		observer: noopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.tokens == nil {
		g, err := tokens.NewRandomGenerator()
		if err != nil {
			return nil, fmt.Errorf("failed to create token generator: %w", err)
		}
		s.tokens = g
	}
	if s.verifier == nil {
		s.verifier = NewSignatureVerifier(nil)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s, nil
}

// checkStorageSettings rejects a storage whose key prefix or nonce window
// differs from cfg. Build the storage with cfg.StorageOptions() to match.
func checkStorageSettings(cfg Config, got storage.Settings) error {
	if got.TemporaryCredentialKeyPrefix != cfg.TemporaryCredentialKeyPrefix {
		return fmt.Errorf("storage temporary credential key prefix %q does not match config %q",
			got.TemporaryCredentialKeyPrefix, cfg.TemporaryCredentialKeyPrefix)
	}
	if got.NonceWindow != cfg.NonceExpiresIn {
		return fmt.Errorf("storage nonce window %s does not match config nonce expiry %s",
			got.NonceWindow, cfg.NonceExpiresIn)
	}
	return nil
}

// Config returns the effective configuration, defaults applied.
func (s *Server) Config() Config {
	return s.cfg
}

// Health reports whether the backing stores are reachable.
func (s *Server) Health(ctx context.Context) error {
	return s.storage.Health(ctx)
}

// ErrorResponse renders err for the client.
func (s *Server) ErrorResponse(err error) *Response {
	return ErrorResponse(err, s.cfg.Realm)
}

func (s *Server) observe(operation string, start time.Time, err error) {
	s.observer.Observe(operation, outcomeOf(err), s.now().Sub(start))
}

// upstream maps a storage failure to ErrUpstreamUnavailable.
func (s *Server) upstream(op string, err error) *Error {
	s.logger.Error("storage operation failed", "operation", op, "error", err)
	return ErrUpstreamUnavailable.WithWrap(err)
}

// CreateTemporaryCredential validates a temporary credential request and
// stores a new temporary credential for the requesting client.
func (s *Server) CreateTemporaryCredential(
	ctx context.Context, req *Request,
) (_ *storage.TemporaryCredential, retErr error) {
	defer func(start time.Time) { s.observe(OperationTemporaryCredential, start, retErr) }(s.now())

	if err := s.checkProtocolParams(req); err != nil {
		return nil, err
	}
	callback := req.Callback()
	if callback == "" {
		return nil, ErrMissingRequiredParameter.WithHint(`Missing "oauth_callback" value.`)
	}
	if err := validateCallback(callback); err != nil {
		return nil, err
	}
	if req.Token() != "" {
		return nil, ErrInvalidRequest.WithHint(`"oauth_token" is not allowed in a temporary credential request.`)
	}

	client, err := s.authenticateClient(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkSignature(req, client, ""); err != nil {
		return nil, err
	}
	if err := s.checkNonce(ctx, req, ""); err != nil {
		return nil, err
	}

	token, secret, err := s.tokens.NewTokenPair()
	if err != nil {
		return nil, ErrServerError.WithWrap(err)
	}
	cred := &storage.TemporaryCredential{
		Token:       token,
		TokenSecret: secret,
		ClientID:    client.ID,
		CallbackURI: callback,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.storage.CreateTemporaryCredential(ctx, cred, s.cfg.TemporaryCredentialExpiresIn); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Two generated tokens collided; let the client retry.
			return nil, ErrServerError.WithWrap(err)
		}
		return nil, s.upstream("create temporary credential", err)
	}

	s.logger.Debug("issued temporary credential", "client_id", client.ID)
	return cred, nil
}

// CreateTemporaryCredentialResponse renders the reply to a successful
// temporary credential request.
func (*Server) CreateTemporaryCredentialResponse(cred *storage.TemporaryCredential) *Response {
	return &Response{
		Status: http.StatusOK,
		Body: url.Values{
			ParamToken:             {cred.Token},
			ParamTokenSecret:       {cred.TokenSecret},
			ParamCallbackConfirmed: {"true"},
		},
	}
}

// CheckAuthorizationRequest returns the pending temporary credential named
// by token so the resource owner can be asked for consent.
func (s *Server) CheckAuthorizationRequest(ctx context.Context, token string) (*storage.TemporaryCredential, error) {
	if token == "" {
		return nil, ErrMissingRequiredParameter.WithHint(`Missing "oauth_token" value.`)
	}
	cred, err := s.storage.GetTemporaryCredential(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, s.upstream("get temporary credential", err)
	}
	if cred.IsAuthorized() {
		return nil, ErrInvalidToken.WithHint("The temporary credential has already been authorized.")
	}
	return cred, nil
}

// AuthorizeTemporaryCredential attaches a fresh verifier and userID to the
// temporary credential named by token.
func (s *Server) AuthorizeTemporaryCredential(
	ctx context.Context, token, userID string,
) (_ *storage.TemporaryCredential, retErr error) {
	defer func(start time.Time) { s.observe(OperationAuthorize, start, retErr) }(s.now())

	if userID == "" {
		return nil, ErrAccessDenied.WithHint("No resource owner granted access.")
	}
	if _, err := s.CheckAuthorizationRequest(ctx, token); err != nil {
		return nil, err
	}

	verifier, err := s.tokens.NewVerifier()
	if err != nil {
		return nil, ErrServerError.WithWrap(err)
	}

	ttl := s.cfg.TemporaryCredentialExpiresIn
	if s.cfg.PreserveTemporaryCredentialTTL {
		ttl = 0
	}
	cred, err := s.storage.AuthorizeTemporaryCredential(ctx, token, verifier, userID, ttl)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrInvalidToken
	case errors.Is(err, storage.ErrAlreadyAuthorized), errors.Is(err, storage.ErrConflict):
		return nil, ErrInvalidToken.WithHint("The temporary credential has already been authorized.")
	default:
		return nil, s.upstream("authorize temporary credential", err)
	}

	s.logger.Debug("authorized temporary credential", "client_id", cred.ClientID, "user_id", userID)
	return cred, nil
}

// CreateAuthorizationResponse redirects the resource owner back to the
// client with oauth_token and oauth_verifier. For out-of-band clients without
// a default redirect URI the verifier is returned in the body instead.
func (s *Server) CreateAuthorizationResponse(ctx context.Context, cred *storage.TemporaryCredential) (*Response, error) {
	params := url.Values{
		ParamToken:    {cred.Token},
		ParamVerifier: {cred.Verifier},
	}
	target, err := s.redirectTarget(ctx, cred)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return &Response{Status: http.StatusOK, Body: params}, nil
	}
	resp, err := redirectResponse(target, params)
	if err != nil {
		return nil, ErrServerError.WithWrap(err)
	}
	return resp, nil
}

// DenyTemporaryCredential discards the temporary credential named by token
// and tells the client that access was denied.
func (s *Server) DenyTemporaryCredential(ctx context.Context, token string) (_ *Response, retErr error) {
	defer func(start time.Time) { s.observe(OperationAuthorize, start, retErr) }(s.now())

	cred, err := s.CheckAuthorizationRequest(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.storage.DeleteTemporaryCredential(ctx, token); err != nil {
		return nil, s.upstream("delete temporary credential", err)
	}

	target, err := s.redirectTarget(ctx, cred)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return s.ErrorResponse(ErrAccessDenied), nil
	}
	resp, err := redirectResponse(target, ErrAccessDenied.Body())
	if err != nil {
		return nil, ErrServerError.WithWrap(err)
	}
	return resp, nil
}

// redirectTarget returns the callback, falling back to the client's default
// redirect URI for out-of-band credentials. "" means no redirect.
func (s *Server) redirectTarget(ctx context.Context, cred *storage.TemporaryCredential) (string, error) {
	if cred.CallbackURI != "" && cred.CallbackURI != OutOfBand {
		return cred.CallbackURI, nil
	}
	client, err := s.storage.GetClient(ctx, cred.ClientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidClient
		}
		return "", s.upstream("get client", err)
	}
	return client.DefaultRedirectURI, nil
}

// CreateTokenCredential exchanges an authorized temporary credential for a
// token credential. The temporary credential is consumed atomically, so of
// several concurrent exchanges at most one succeeds.
func (s *Server) CreateTokenCredential(
	ctx context.Context, req *Request,
) (_ *storage.TokenCredential, retErr error) {
	defer func(start time.Time) { s.observe(OperationTokenCredential, start, retErr) }(s.now())

	if err := s.checkProtocolParams(req); err != nil {
		return nil, err
	}
	token, verifier := req.Token(), req.Verifier()
	if token == "" {
		return nil, ErrMissingRequiredParameter.WithHint(`Missing "oauth_token" value.`)
	}
	if verifier == "" {
		return nil, ErrMissingRequiredParameter.WithHint(`Missing "oauth_verifier" value.`)
	}

	client, err := s.authenticateClient(ctx, req)
	if err != nil {
		return nil, err
	}

	temp, err := s.storage.GetTemporaryCredential(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, s.upstream("get temporary credential", err)
	}
	if temp.ClientID != client.ID {
		return nil, ErrInvalidClient.WithHint("The temporary credential was issued to another client.")
	}
	if err := s.checkSignature(req, client, temp.TokenSecret); err != nil {
		return nil, err
	}
	if !temp.IsAuthorized() || subtle.ConstantTimeCompare([]byte(temp.Verifier), []byte(verifier)) != 1 {
		return nil, ErrInvalidVerifier
	}
	if err := s.checkNonce(ctx, req, token); err != nil {
		return nil, err
	}

	temp, err = s.storage.ConsumeTemporaryCredential(ctx, token, verifier)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrInvalidToken
	case errors.Is(err, storage.ErrVerifierMismatch):
		return nil, ErrInvalidVerifier
	default:
		return nil, s.upstream("consume temporary credential", err)
	}

	tokenValue, secret, err := s.tokens.NewTokenPair()
	if err != nil {
		s.restore(ctx, temp)
		return nil, ErrServerError.WithWrap(err)
	}
	cred := &storage.TokenCredential{
		Token:       tokenValue,
		TokenSecret: secret,
		ClientID:    temp.ClientID,
		UserID:      temp.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.storage.CreateTokenCredential(ctx, cred); err != nil {
		s.restore(ctx, temp)
		return nil, s.upstream("create token credential", err)
	}

	s.logger.Debug("issued token credential", "client_id", cred.ClientID, "user_id", cred.UserID)
	return cred, nil
}

// restore puts back a consumed temporary credential after a failed exchange
// so the client can retry.
func (s *Server) restore(ctx context.Context, temp *storage.TemporaryCredential) {
	if err := s.storage.RestoreTemporaryCredential(ctx, temp); err != nil {
		s.logger.Warn("failed to restore temporary credential", "client_id", temp.ClientID, "error", err)
	}
}

// CreateTokenCredentialResponse renders the reply to a successful exchange.
func (*Server) CreateTokenCredentialResponse(cred *storage.TokenCredential) *Response {
	return &Response{
		Status: http.StatusOK,
		Body: url.Values{
			ParamToken:       {cred.Token},
			ParamTokenSecret: {cred.TokenSecret},
		},
	}
}

// ValidateProtectedResourceRequest authenticates a request signed with a
// token credential and returns that credential.
func (s *Server) ValidateProtectedResourceRequest(
	ctx context.Context, req *Request,
) (_ *storage.TokenCredential, retErr error) {
	defer func(start time.Time) { s.observe(OperationProtectedResource, start, retErr) }(s.now())

	if err := s.checkProtocolParams(req); err != nil {
		return nil, err
	}
	token := req.Token()
	if token == "" {
		return nil, ErrMissingRequiredParameter.WithHint(`Missing "oauth_token" value.`)
	}

	client, err := s.authenticateClient(ctx, req)
	if err != nil {
		return nil, err
	}
	cred, err := s.storage.GetTokenCredential(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, s.upstream("get token credential", err)
	}
	if cred.ClientID != client.ID {
		return nil, ErrInvalidToken
	}
	if err := s.checkSignature(req, client, cred.TokenSecret); err != nil {
		return nil, err
	}
	if err := s.checkNonce(ctx, req, token); err != nil {
		return nil, err
	}
	return cred, nil
}

// RevokeTokenCredential deletes the token credential named by token.
func (s *Server) RevokeTokenCredential(ctx context.Context, token string) (retErr error) {
	defer func(start time.Time) { s.observe(OperationRevoke, start, retErr) }(s.now())

	if err := s.storage.DeleteTokenCredential(ctx, token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidToken
		}
		return s.upstream("delete token credential", err)
	}
	return nil
}

// checkProtocolParams validates the protocol parameters shared by every
// signed request (RFC 5849 section 3.2).
func (s *Server) checkProtocolParams(req *Request) *Error {
	if req == nil {
		return ErrInvalidRequest
	}
	if req.err != nil {
		return req.err
	}

	for _, name := range []string{ParamConsumerKey, ParamSignatureMethod, ParamSignature} {
		if req.OAuthParam(name) == "" {
			return ErrMissingRequiredParameter.WithHint(fmt.Sprintf("Missing %q value.", name))
		}
	}
	if v := req.OAuthParam(ParamVersion); v != "" && v != supportedProtocolVersion {
		return ErrInvalidRequest.WithHint(`Invalid "oauth_version" value.`)
	}
	if !s.verifier.Supports(req.SignatureMethod()) {
		return ErrUnsupportedSignatureMethod
	}

	// PLAINTEXT requests may omit the timestamp and nonce.
	if req.SignatureMethod() == signature.MethodPlaintext && req.Timestamp() == "" && req.Nonce() == "" {
		return nil
	}
	if req.Timestamp() == "" {
		return ErrMissingRequiredParameter.WithHint(`Missing "oauth_timestamp" value.`)
	}
	if req.Nonce() == "" {
		return ErrMissingRequiredParameter.WithHint(`Missing "oauth_nonce" value.`)
	}
	ts, ok := parseTimestamp(req.Timestamp())
	if !ok {
		return ErrInvalidRequest.WithHint(`Invalid "oauth_timestamp" value.`)
	}
	if skew := s.cfg.TimestampSkew; skew > 0 {
		delta := s.now().Sub(time.Unix(ts, 0))
		if delta > skew || delta < -skew {
			return ErrInvalidRequest.WithHint(`Expired "oauth_timestamp" value.`)
		}
	}
	return nil
}

// parseTimestamp accepts a positive integer of decimal digits only.
func parseTimestamp(v string) (int64, bool) {
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, false
		}
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ts <= 0 {
		return 0, false
	}
	return ts, true
}

func (s *Server) authenticateClient(ctx context.Context, req *Request) (*storage.Client, error) {
	client, err := s.storage.GetClient(ctx, req.ClientID())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, s.upstream("get client", err)
	}
	return client, nil
}

func (s *Server) checkSignature(req *Request, client *storage.Client, tokenSecret string) error {
	if err := s.verifier.VerifySignature(req, client, tokenSecret); err != nil {
		s.logger.Debug("signature verification failed", "client_id", client.ID, "error", err)
		return ErrInvalidSignature
	}
	return nil
}

// checkNonce records the request's nonce tuple and rejects replays.
func (s *Server) checkNonce(ctx context.Context, req *Request, token string) error {
	if req.Nonce() == "" {
		return nil
	}
	// Only an unsigned PLAINTEXT request lacks a timestamp; it records as 0.
	ts, _ := parseTimestamp(req.Timestamp())
	exists, err := s.storage.ExistsNonce(ctx, req.Nonce(), req.ClientID(), token, ts)
	if err != nil {
		return s.upstream("check nonce", err)
	}
	if exists {
		s.logger.Warn("replayed request rejected", "client_id", req.ClientID())
		return ErrInvalidNonce
	}
	return nil
}

func validateCallback(callback string) error {
	if callback == OutOfBand {
		return nil
	}
	u, err := url.Parse(callback)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidRequest.WithHint(`Invalid "oauth_callback" value.`)
	}
	return nil
}
