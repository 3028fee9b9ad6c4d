// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/models"
)

// LocalAuthenticator validates credentials against a single bcrypt-hashed
// admin account from configuration. Used by deployments that run without
// an Auth0 tenant.
type LocalAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewLocalAuthenticator creates the local fallback from security config.
// Returns nil when no local admin is configured.
func NewLocalAuthenticator(cfg config.SecurityConfig) (*LocalAuthenticator, error) {
	if cfg.AdminUsername == "" && cfg.AdminPasswordHash == "" {
		return nil, nil
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin_username and admin_password_hash must be set together")
	}
	if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
		return nil, fmt.Errorf("admin_password_hash is not a valid bcrypt hash: %w", err)
	}

	return &LocalAuthenticator{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPasswordHash),
	}, nil
}

// Authenticate checks the credentials and returns the local admin profile.
// Username comparison is constant-time; bcrypt comparison is timing-safe
// by design. Both comparisons run regardless of the username result.
func (a *LocalAuthenticator) Authenticate(username, password string) (*models.SessionUser, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil

	if !(usernameMatch && passwordMatch) {
		return nil, fmt.Errorf("invalid username or password")
	}

	return &models.SessionUser{
		ID:   "local|" + a.username,
		Name: a.username,
		Role: "admin",
	}, nil
}
