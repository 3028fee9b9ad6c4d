// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/models"
)

func testConfig() config.Auth0Config {
	return config.Auth0Config{
		Domain:       "stagepass.test.auth0.com",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Connection:   "Username-Password-Authentication",
	}
}

// newStubTenant runs an httptest server emulating the token endpoint and
// the Management API users resource, and returns a client pointed at it.
func newStubTenant(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewClient(testConfig())
	c.tokenURL = srv.URL + "/oauth/token"
	c.apiBase = srv.URL + "/api/v2"
	return c, srv
}

func signTestIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestManagementTokenCached(t *testing.T) {
	var tokenCalls int64

	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			atomic.AddInt64(&tokenCalls, 1)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "mgmt-token",
				"expires_in":   3600,
			})
		case "/api/v2/users":
			if got := r.Header.Get("Authorization"); got != "Bearer mgmt-token" {
				t.Errorf("Authorization: expected %q, got %q", "Bearer mgmt-token", got)
			}
			_, _ = w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	defer srv.Close()

	for i := 0; i < 3; i++ {
		if _, err := c.ListUsers(context.Background()); err != nil {
			t.Fatalf("ListUsers: %v", err)
		}
	}

	if n := atomic.LoadInt64(&tokenCalls); n != 1 {
		t.Errorf("token endpoint calls: expected 1, got %d", n)
	}
}

func TestManagementTokenRefreshAfterInvalidate(t *testing.T) {
	var tokenCalls int64

	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			atomic.AddInt64(&tokenCalls, 1)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	defer srv.Close()

	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	c.InvalidateToken()
	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers after invalidate: %v", err)
	}

	if n := atomic.LoadInt64(&tokenCalls); n != 2 {
		t.Errorf("token endpoint calls: expected 2, got %d", n)
	}
}

func TestCreateUserForcesConnection(t *testing.T) {
	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
		case r.URL.Path == "/api/v2/users" && r.Method == http.MethodPost:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["connection"] != "Username-Password-Authentication" {
				t.Errorf("connection: expected forced value, got %v", body["connection"])
			}
			if body["email"] != "new@example.com" {
				t.Errorf("email: got %v", body["email"])
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.IdentityUser{UserID: "auth0|123", Email: "new@example.com"})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	defer srv.Close()

	user, err := c.CreateUser(context.Background(), models.UserData{
		Email:    "new@example.com",
		Password: "s3cret!pass",
		UserMetadata: &models.UserMetadata{
			Role:    "editor",
			Contact: "+10000000",
		},
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.UserID != "auth0|123" {
		t.Errorf("user_id: got %q", user.UserID)
	}
}

func TestChangePasswordPatchesUser(t *testing.T) {
	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
		case r.Method == http.MethodPatch:
			if r.URL.Path != "/api/v2/users/auth0%7C123" && r.URL.Path != "/api/v2/users/auth0|123" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "n3w-pass!" {
				t.Errorf("password not forwarded, got %v", body)
			}
			_ = json.NewEncoder(w).Encode(models.IdentityUser{UserID: "auth0|123"})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	defer srv.Close()

	if _, err := c.ChangePassword(context.Background(), "auth0|123", "n3w-pass!"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	defer srv.Close()

	if err := c.DeleteUser(context.Background(), "auth0|123"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
}

func TestPasswordLogin(t *testing.T) {
	idToken := func(t *testing.T) string {
		return signTestIDToken(t, jwt.MapClaims{
			"sub":     "auth0|42",
			"name":    "Ada L",
			"email":   "ada@example.com",
			"picture": "https://img.example.com/ada.png",
			"user_metadata": map[string]string{
				"role":    "admin",
				"contact": "+10000000",
			},
			"exp": time.Now().Add(time.Hour).Unix(),
		})
	}

	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["grant_type"] != "password" {
			t.Errorf("grant_type: got %q", body["grant_type"])
		}
		if body["username"] != "ada" || body["password"] != "pw" {
			t.Errorf("credentials not forwarded: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "access",
			"id_token":     idToken(t),
			"expires_in":   3600,
		})
	})
	defer srv.Close()

	user, err := c.PasswordLogin(context.Background(), "ada", "pw")
	if err != nil {
		t.Fatalf("PasswordLogin: %v", err)
	}
	if user.ID != "auth0|42" {
		t.Errorf("id: got %q", user.ID)
	}
	if user.Role != "admin" {
		t.Errorf("role: got %q", user.Role)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email: got %q", user.Email)
	}
}

func TestPasswordLoginBadCredentials(t *testing.T) {
	c, srv := newStubTenant(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Wrong email or password.",
		})
	})
	defer srv.Close()

	_, err := c.PasswordLogin(context.Background(), "ada", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Wrong email or password." {
		t.Errorf("error: got %q", err.Error())
	}
}
