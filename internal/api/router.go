// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/config"
)

// Router wires handlers, session gating and middleware into one http.Handler.
type Router struct {
	handler  *Handler
	sessions *auth.SessionManager
	chiMW    *ChiMiddleware
}

// NewRouter creates a router from security config and the handler set.
func NewRouter(handler *Handler, sessions *auth.SessionManager, cfg config.SecurityConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
	if cfg.RateLimitReqs > 0 {
		mwConfig.RateLimitRequests = cfg.RateLimitReqs
	}
	if cfg.RateLimitWindow > 0 {
		mwConfig.RateLimitWindow = cfg.RateLimitWindow
	}
	mwConfig.RateLimitDisabled = cfg.RateLimitDisabled

	return &Router{
		handler:  handler,
		sessions: sessions,
		chiMW:    NewChiMiddleware(mwConfig),
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMW.CORS()) // global so OPTIONS preflight always resolves

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMW.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.With(router.chiMW.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// Identity management requires a valid admin session.
	r.Route("/api/v1/auth0", func(r chi.Router) {
		r.Use(router.chiMW.RateLimitCustom(RateLimitWrite))
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Use(auth.RequireSession(router.sessions))
		r.Post("/", router.handler.IdentityProxy)
	})

	r.Route("/api/v1/calendar", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Get("/", router.handler.Calendar)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
