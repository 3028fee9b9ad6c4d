// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package main is the entry point for the StagePass admin gateway.
//
// The gateway fronts the events REST backend for the admin UI and the
// public calendar. It terminates admin sessions, proxies identity
// management to the Auth0 tenant so the management secret never reaches a
// browser, and exposes backend health and Prometheus metrics.
//
// # Startup order
//
//  1. Configuration: layered load via Koanf v2 (defaults, yaml file,
//     environment variables)
//  2. Logging: zerolog, JSON in production
//  3. Backend client: typed access layer, optionally wrapped in a
//     circuit breaker (BACKEND_BREAKER_ENABLED=true)
//  4. Identity: Auth0 management client when a tenant is configured,
//     local bcrypt admin as fallback
//  5. HTTP server: Chi router with graceful shutdown on SIGINT/SIGTERM
//
// # Configuration
//
// Required:
//   - BACKEND_URL: events backend base URL
//   - JWT_SECRET: 32+ character secret for session tokens
//
// Identity (choose at least one):
//   - AUTH0_DOMAIN, AUTH0_CLIENT_ID, AUTH0_CLIENT_SECRET
//   - ADMIN_USERNAME, ADMIN_PASSWORD_HASH (bcrypt)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stagepass/stagepass/internal/api"
	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/backend"
	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/identity"
	"github.com/stagepass/stagepass/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("backend_url", cfg.Backend.URL).
		Bool("auth0_enabled", cfg.Auth0.Enabled()).
		Bool("breaker_enabled", cfg.Backend.BreakerEnabled).
		Msg("Starting StagePass gateway")

	client := backend.New(cfg.Backend)
	var backendAccess api.Backend = client
	if cfg.Backend.BreakerEnabled {
		backendAccess = backend.NewCircuitBreakerClient(client)
	}

	if err := backendAccess.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Backend unreachable at startup (will keep serving)")
	} else {
		logging.Info().Msg("Connected to events backend")
	}

	var identityClient api.IdentityProvider
	if cfg.Auth0.Enabled() {
		identityClient = identity.NewClient(cfg.Auth0)
		logging.Info().Str("domain", cfg.Auth0.Domain).Msg("Auth0 identity enabled")
	} else {
		logging.Info().Msg("Auth0 identity disabled")
	}

	local, err := auth.NewLocalAuthenticator(cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid local admin configuration")
	}
	if identityClient == nil && local == nil {
		logging.Warn().Msg("No authentication method configured; login will always fail")
	}

	sessions, err := auth.NewSessionManager(cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid session configuration")
	}

	handler := api.NewHandler(backendAccess, identityClient, local, sessions)
	router := api.NewRouter(handler, sessions, cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Gateway stopped gracefully")
}
