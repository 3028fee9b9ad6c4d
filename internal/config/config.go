// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package config holds all application configuration, loaded from built-in
// defaults, an optional YAML config file, and environment variables (Koanf v2,
// highest priority last).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration for the StagePass gateway.
type Config struct {
	Backend  BackendConfig  `koanf:"backend"`
	Server   ServerConfig   `koanf:"server"`
	Auth0    Auth0Config    `koanf:"auth0"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// BackendConfig configures the events REST backend the access layer talks to.
type BackendConfig struct {
	// URL is the backend base URL. Trailing slashes are stripped at load.
	URL string `koanf:"url"`

	// Timeout bounds every backend call made through the shared executor.
	Timeout time.Duration `koanf:"timeout"`

	// GalleriesTimeout is the fixed per-call timeout the galleries resource
	// has always carried. Kept separate from Timeout until the backend team
	// confirms whether the galleries endpoint is genuinely slower.
	GalleriesTimeout time.Duration `koanf:"galleries_timeout"`

	// RateLimit caps outbound requests per second (0 disables the limiter).
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the limiter burst size when RateLimit is set.
	RateBurst int `koanf:"rate_burst"`

	// BreakerEnabled wraps the backend client in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// ServerConfig configures the HTTP server hosting the admin gateway.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production"; switches log format
	// and cookie security.
	Environment string `koanf:"environment"`
}

// Auth0Config configures the Auth0 tenant used for admin identity.
// The management client exists so the client secret never leaves the server.
type Auth0Config struct {
	// Domain is the tenant domain, e.g. "example.us.auth0.com".
	Domain       string `koanf:"domain"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`

	// Connection is the database connection users are created in.
	Connection string `koanf:"connection"`
}

// SecurityConfig configures the admin session gate.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Must be at least 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTL is the session token lifetime.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// AdminUsername and AdminPasswordHash enable the local bcrypt login
	// fallback for deployments without Auth0.
	AdminUsername     string `koanf:"admin_username"`
	AdminPasswordHash string `koanf:"admin_password_hash"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// TokenURL returns the tenant OAuth token endpoint.
func (c Auth0Config) TokenURL() string {
	return "https://" + c.Domain + "/oauth/token"
}

// ManagementAudience returns the Management API audience for the tenant.
func (c Auth0Config) ManagementAudience() string {
	return "https://" + c.Domain + "/api/v2/"
}

// Enabled reports whether the Auth0 integration is configured.
func (c Auth0Config) Enabled() bool {
	return c.Domain != "" && c.ClientID != "" && c.ClientSecret != ""
}

// Addr returns the host:port the server binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")

	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	parsed, err := url.Parse(c.Backend.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("security.session_ttl must be positive")
	}

	if c.Auth0.Enabled() && !strings.Contains(c.Auth0.Domain, ".") {
		return fmt.Errorf("auth0.domain %q does not look like a tenant domain", c.Auth0.Domain)
	}

	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit must not be negative")
	}

	return nil
}
