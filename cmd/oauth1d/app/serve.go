// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklok/oauth1d/pkg/authserver"
	"github.com/stacklok/oauth1d/pkg/authserver/handlers"
	"github.com/stacklok/oauth1d/pkg/authserver/metrics"
	"github.com/stacklok/oauth1d/pkg/authserver/runconfig"
	"github.com/stacklok/oauth1d/pkg/authserver/storage"
	"github.com/stacklok/oauth1d/pkg/logger"
)

const (
	serverReadHeaderTimeout = 10 * time.Second
	serverReadTimeout       = 30 * time.Second
	serverWriteTimeout      = 30 * time.Second
	serverIdleTimeout       = 120 * time.Second
	shutdownTimeout         = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the authorization server",
		Long: `Start the OAuth 1.0a authorization server.

Endpoints:
  POST /oauth/initiate    temporary credential request
  GET  /oauth/authorize   describe a pending temporary credential
  POST /oauth/authorize   approve or deny it for the user in the user header
  POST /oauth/token       exchange an approved credential for a token credential
  GET  /oauth/identity    signed request returning the token's client and user
  POST /oauth/revoke      signed request revoking the token credential
  GET  /healthz           storage health
  GET  /metrics           Prometheus metrics, when metrics.enabled is set`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	router, stor, err := buildRouter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stor.Close(); err != nil {
			logger.Warnw("failed to close storage", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}

	logger.Infow("starting oauth1d", "address", cfg.ListenAddress, "public_url", cfg.PublicURL)
	return listenAndServe(ctx, server)
}

// buildRouter assembles storage, the authorization server and its HTTP
// routes from cfg. The caller owns the returned storage.
func buildRouter(ctx context.Context, cfg *runconfig.RunConfig) (http.Handler, storage.Storage, error) {
	authCfg, err := runconfig.BuildConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	publicURL, err := runconfig.BuildPublicURL(cfg)
	if err != nil {
		return nil, nil, err
	}

	stor, err := runconfig.BuildStorage(ctx, cfg, authCfg)
	if err != nil {
		return nil, nil, err
	}

	var serverOpts []authserver.Option
	handlerOpts := []handlers.Option{
		handlers.WithUserResolver(handlers.NewHeaderUserResolver(cfg.UserHeader)),
	}
	if publicURL != nil {
		handlerOpts = append(handlerOpts, handlers.WithPublicURL(publicURL))
	}
	if cfg.Metrics.Enabled {
		m := metrics.New()
		serverOpts = append(serverOpts, authserver.WithObserver(m))
		handlerOpts = append(handlerOpts, handlers.WithMetricsHandler(m.Handler()))
	}

	srv, err := authserver.NewServer(authCfg, stor, serverOpts...)
	if err != nil {
		_ = stor.Close()
		return nil, nil, fmt.Errorf("failed to create authorization server: %w", err)
	}

	return handlers.NewHandler(srv, handlerOpts...).Routes(), stor, nil
}

// listenAndServe runs server until ctx is cancelled, then shuts it down
// gracefully.
func listenAndServe(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Infow("shutting down oauth1d")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
