// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stagepass/config.yaml",
	"/etc/stagepass/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:              "http://localhost:4000",
			Timeout:          30 * time.Second,
			GalleriesTimeout: 15 * time.Second,
			RateLimit:        0, // unlimited
			RateBurst:        10,
			BreakerEnabled:   true,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8780,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Auth0: Auth0Config{
			Connection: "Username-Password-Authentication",
		},
		Security: SecurityConfig{
			SessionTTL:      1 * time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration with layered sources (highest priority last):
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (BACKEND_URL, AUTH0_CLIENT_SECRET, JWT_SECRET, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive as env var strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known
// slice fields. Env vars come in as strings; YAML values are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envVarMap maps flat environment variable names to nested koanf paths.
// Names follow what the deployment has always used (BACKEND_URL, JWT_SECRET)
// rather than a mechanical SECTION__KEY scheme.
var envVarMap = map[string]string{
	"BACKEND_URL":               "backend.url",
	"BACKEND_TIMEOUT":           "backend.timeout",
	"BACKEND_GALLERIES_TIMEOUT": "backend.galleries_timeout",
	"BACKEND_RATE_LIMIT":        "backend.rate_limit",
	"BACKEND_RATE_BURST":        "backend.rate_burst",
	"BACKEND_BREAKER_ENABLED":   "backend.breaker_enabled",

	"HTTP_HOST":    "server.host",
	"HTTP_PORT":    "server.port",
	"HTTP_TIMEOUT": "server.timeout",
	"ENVIRONMENT":  "server.environment",

	"AUTH0_DOMAIN":        "auth0.domain",
	"AUTH0_CLIENT_ID":     "auth0.client_id",
	"AUTH0_CLIENT_SECRET": "auth0.client_secret",
	"AUTH0_CONNECTION":    "auth0.connection",

	"JWT_SECRET":          "security.jwt_secret",
	"SESSION_TTL":         "security.session_ttl",
	"ADMIN_USERNAME":      "security.admin_username",
	"ADMIN_PASSWORD_HASH": "security.admin_password_hash",
	"RATE_LIMIT_REQS":     "security.rate_limit_reqs",
	"RATE_LIMIT_WINDOW":   "security.rate_limit_window",
	"RATE_LIMIT_DISABLED": "security.rate_limit_disabled",
	"CORS_ORIGINS":        "security.cors_origins",

	"LOG_LEVEL":  "logging.level",
	"LOG_FORMAT": "logging.format",
	"LOG_CALLER": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables are dropped so unrelated environment noise never lands
// in the config tree.
func envTransformFunc(key string) string {
	if path, ok := envVarMap[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}
