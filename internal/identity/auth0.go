// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package identity wraps the Auth0 tenant behind a server-side client so
// the management client secret never reaches a browser. It covers the two
// tenant surfaces the gateway needs: the Management API for admin user
// CRUD and the token endpoint for password-grant logins.
package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/logging"
	"github.com/stagepass/stagepass/internal/models"
)

// tokenSkew is subtracted from the token lifetime so a token is refreshed
// before it can expire mid-request.
const tokenSkew = 30 * time.Second

// Client talks to one Auth0 tenant. Management tokens are obtained via
// client credentials and cached until shortly before expiry.
type Client struct {
	cfg        config.Auth0Config
	httpClient *http.Client

	// tokenURL and apiBase default from cfg; tests point them at stubs.
	tokenURL string
	apiBase  string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates an identity client for the configured tenant.
func NewClient(cfg config.Auth0Config) *Client {
	return &Client{
		cfg:      cfg,
		tokenURL: cfg.TokenURL(),
		apiBase:  "https://" + cfg.Domain + "/api/v2",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type tokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// managementToken returns a cached Management API token, fetching a fresh
// one via the client-credentials grant when the cache is empty or stale.
func (c *Client) managementToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	payload := map[string]string{
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"audience":      c.cfg.ManagementAudience(),
		"grant_type":    "client_credentials",
	}

	var res tokenResponse
	if err := c.postJSON(ctx, c.tokenURL, "", payload, &res); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("generating token: empty access token")
	}

	lifetime := time.Duration(res.ExpiresIn) * time.Second
	if lifetime <= tokenSkew {
		lifetime = time.Minute
	}

	c.token = res.AccessToken
	c.tokenExpiry = time.Now().Add(lifetime - tokenSkew)
	logging.Debug().Time("expiry", c.tokenExpiry).Msg("Refreshed identity management token")

	return c.token, nil
}

// InvalidateToken drops the cached management token. The next call fetches
// a fresh one.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

func (c *Client) usersURL(userID string) string {
	base := c.apiBase + "/users"
	if userID == "" {
		return base
	}
	return base + "/" + url.PathEscape(userID)
}

// CreateUser creates an admin user in the configured database connection.
func (c *Client) CreateUser(ctx context.Context, data models.UserData) (*models.IdentityUser, error) {
	token, err := c.managementToken(ctx)
	if err != nil {
		return nil, err
	}

	// The connection is server-chosen; callers cannot override it.
	body := struct {
		models.UserData
		Connection string `json:"connection"`
	}{UserData: data, Connection: c.cfg.Connection}

	var user models.IdentityUser
	if err := c.doJSON(ctx, http.MethodPost, c.usersURL(""), token, body, &user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// ListUsers retrieves all admin users in the tenant.
func (c *Client) ListUsers(ctx context.Context) ([]models.IdentityUser, error) {
	token, err := c.managementToken(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.IdentityUser
	if err := c.doJSON(ctx, http.MethodGet, c.usersURL(""), token, nil, &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update to an admin user's profile.
func (c *Client) UpdateUser(ctx context.Context, userID string, data models.UserData) (*models.IdentityUser, error) {
	token, err := c.managementToken(ctx)
	if err != nil {
		return nil, err
	}

	var user models.IdentityUser
	if err := c.doJSON(ctx, http.MethodPatch, c.usersURL(userID), token, data, &user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return &user, nil
}

// ChangePassword sets a new password for an admin user.
func (c *Client) ChangePassword(ctx context.Context, userID, newPassword string) (*models.IdentityUser, error) {
	token, err := c.managementToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]string{
		"password":   newPassword,
		"connection": c.cfg.Connection,
	}

	var user models.IdentityUser
	if err := c.doJSON(ctx, http.MethodPatch, c.usersURL(userID), token, body, &user); err != nil {
		return nil, fmt.Errorf("changing password: %w", err)
	}
	return &user, nil
}

// DeleteUser removes an admin user from the tenant.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	token, err := c.managementToken(ctx)
	if err != nil {
		return err
	}

	if err := c.doJSON(ctx, http.MethodDelete, c.usersURL(userID), token, nil, nil); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// idTokenClaims is the subset of the OIDC ID token the gateway reads.
// The token arrives over TLS directly from the tenant's token endpoint,
// so parsing without local signature verification mirrors trusting the
// token response body itself.
type idTokenClaims struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Picture      string               `json:"picture"`
	UserMetadata *models.UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// PasswordLogin exchanges admin credentials for a tenant-issued identity
// via the resource-owner password grant, returning the profile carried in
// the ID token.
func (c *Client) PasswordLogin(ctx context.Context, username, password string) (*models.SessionUser, error) {
	payload := map[string]string{
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"grant_type":    "password",
		"username":      username,
		"password":      password,
		"connection":    c.cfg.Connection,
	}

	var res tokenResponse
	if err := c.postJSON(ctx, c.tokenURL, "", payload, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" || res.IDToken == "" {
		return nil, fmt.Errorf("missing access token or ID token")
	}

	parser := jwt.NewParser()
	var claims idTokenClaims
	if _, _, err := parser.ParseUnverified(res.IDToken, &claims); err != nil {
		return nil, fmt.Errorf("decoding ID token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("decoding ID token: missing subject")
	}

	user := &models.SessionUser{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}
	if claims.UserMetadata != nil {
		user.Role = claims.UserMetadata.Role
		user.Contact = claims.UserMetadata.Contact
	}
	return user, nil
}

// postJSON is doJSON specialized for POST; kept separate so token-endpoint
// calls read naturally at call sites.
func (c *Client) postJSON(ctx context.Context, endpoint, token string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, token, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var terr tokenError
		if json.Unmarshal(raw, &terr) == nil {
			if terr.ErrorDescription != "" {
				return fmt.Errorf("%s", terr.ErrorDescription)
			}
			if terr.Error != "" {
				return fmt.Errorf("%s", terr.Error)
			}
		}
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, sanitizeEndpoint(endpoint))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// sanitizeEndpoint strips the query from an endpoint for error messages.
func sanitizeEndpoint(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
