// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package auth issues and validates the gateway's own session tokens.
// Identity comes from either the Auth0 password grant or the local bcrypt
// fallback; once a login succeeds, the gateway mints a short-lived HS256
// session token and every admin route checks it.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/models"
)

// SessionClaims carries the logged-in user's profile inside the token.
type SessionClaims struct {
	User models.SessionUser `json:"user"`
	jwt.RegisteredClaims
}

// SessionManager mints and validates session tokens. Uses HMAC-SHA256;
// the secret is stored as []byte and never logged.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a session token manager from security config.
// The secret must be at least 32 characters.
func NewSessionManager(cfg config.SecurityConfig) (*SessionManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required but was empty")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt_secret must be at least 32 characters")
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &SessionManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
	}, nil
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed session token for an authenticated user.
func (m *SessionManager) Issue(user models.SessionUser) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a session token and returns its claims. Rejects tokens
// signed with any algorithm other than HMAC to prevent algorithm
// confusion attacks.
func (m *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
