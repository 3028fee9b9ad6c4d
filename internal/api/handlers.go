// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/calendar"
	"github.com/stagepass/stagepass/internal/logging"
	"github.com/stagepass/stagepass/internal/models"
	"github.com/stagepass/stagepass/internal/validation"
)

// Backend is the slice of the backend access layer the handlers need.
// Both backend.Client and backend.CircuitBreakerClient satisfy it.
type Backend interface {
	Ping(ctx context.Context) error
	ListEvents(ctx context.Context, q models.EventsQuery) ([]models.Event, error)
}

// IdentityProvider is the identity management surface the proxy dispatches
// to. Satisfied by identity.Client; nil when no Auth0 tenant is configured.
type IdentityProvider interface {
	CreateUser(ctx context.Context, data models.UserData) (*models.IdentityUser, error)
	ListUsers(ctx context.Context) ([]models.IdentityUser, error)
	UpdateUser(ctx context.Context, userID string, data models.UserData) (*models.IdentityUser, error)
	ChangePassword(ctx context.Context, userID, newPassword string) (*models.IdentityUser, error)
	DeleteUser(ctx context.Context, userID string) error
	PasswordLogin(ctx context.Context, username, password string) (*models.SessionUser, error)
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	backend  Backend
	identity IdentityProvider
	local    *auth.LocalAuthenticator
	sessions *auth.SessionManager

	// now is replaceable in tests.
	now func() time.Time
}

// NewHandler creates the handler set. identity and local may each be nil;
// login fails cleanly when neither is configured.
func NewHandler(backend Backend, identity IdentityProvider, local *auth.LocalAuthenticator, sessions *auth.SessionManager) *Handler {
	return &Handler{
		backend:  backend,
		identity: identity,
		local:    local,
		sessions: sessions,
		now:      time.Now,
	}
}

// Health reports gateway liveness and backend reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	backendStatus := "up"
	if err := h.backend.Ping(ctx); err != nil {
		status = "degraded"
		backendStatus = "down"
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Backend health check failed")
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"backend": backendStatus,
	})
}

// HealthLive reports process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login authenticates admin credentials and mints a session token. Auth0
// is tried first when configured; the local bcrypt account is the fallback.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondMessage(w, http.StatusBadRequest, verr.Error())
		return
	}

	user, err := h.authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Info().Str("username", req.Username).Msg("Login rejected")
		respondMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.sessions.Issue(*user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to issue session token")
		respondMessage(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.sessions.TTL().Seconds()),
		User:      *user,
	})
}

func (h *Handler) authenticate(ctx context.Context, username, password string) (*models.SessionUser, error) {
	if h.identity != nil {
		user, err := h.identity.PasswordLogin(ctx, username, password)
		if err == nil {
			return user, nil
		}
		logging.Ctx(ctx).Debug().Err(err).Msg("Identity provider login failed")
		if h.local == nil {
			return nil, err
		}
	}
	if h.local != nil {
		return h.local.Authenticate(username, password)
	}
	return nil, errNoAuthenticator
}

var errNoAuthenticator = &authError{"no authentication method configured"}

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

// IdentityProxy dispatches identity management actions. The action names
// and response shapes match what the admin UI sends.
func (h *Handler) IdentityProxy(w http.ResponseWriter, r *http.Request) {
	if h.identity == nil {
		respondMessage(w, http.StatusServiceUnavailable, "Identity provider is not configured")
		return
	}

	var req models.IdentityProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()

	switch req.Action {
	case models.ActionCreateUser:
		if req.UserData == nil {
			respondMessage(w, http.StatusBadRequest, "userData is required")
			return
		}
		user, err := h.identity.CreateUser(ctx, *req.UserData)
		if err != nil {
			h.identityError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)

	case models.ActionGetAllUsers:
		users, err := h.identity.ListUsers(ctx)
		if err != nil {
			h.identityError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, users)

	case models.ActionUpdateUserDetails:
		if req.UserID == "" || req.UserData == nil {
			respondMessage(w, http.StatusBadRequest, "userId and userData are required")
			return
		}
		user, err := h.identity.UpdateUser(ctx, req.UserID, *req.UserData)
		if err != nil {
			h.identityError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)

	case models.ActionChangeUserPassword:
		if req.UserID == "" || req.NewPassword == "" {
			respondMessage(w, http.StatusBadRequest, "userId and newPassword are required")
			return
		}
		user, err := h.identity.ChangePassword(ctx, req.UserID, req.NewPassword)
		if err != nil {
			h.identityError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)

	case models.ActionDeleteUser:
		if req.UserID == "" {
			respondMessage(w, http.StatusBadRequest, "userId is required")
			return
		}
		if err := h.identity.DeleteUser(ctx, req.UserID); err != nil {
			h.identityError(w, r, err)
			return
		}
		respondMessage(w, http.StatusOK, "User deleted successfully")

	default:
		respondMessage(w, http.StatusBadRequest, "Invalid action")
	}
}

func (h *Handler) identityError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Msg("Identity proxy action failed")
	respondMessage(w, http.StatusInternalServerError, "Error in Auth0 handler: "+err.Error())
}

// calendarResponse is the payload of the public calendar endpoint.
type calendarResponse struct {
	Months []calendar.MonthRow `json:"months"`
	Events []models.Event      `json:"events"`
}

// Calendar returns the rolling twelve-month event window, optionally
// narrowed to one "YYYY-MM" bucket via the month query parameter.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.backend.ListEvents(r.Context(), models.EventsQuery{Mode: models.ModeUpcoming})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to load events for calendar")
		respondMessage(w, http.StatusBadGateway, "Failed to load events")
		return
	}

	now := h.now()
	upcoming := calendar.Upcoming(events, now)

	respondJSON(w, http.StatusOK, calendarResponse{
		Months: calendar.Months(upcoming, now),
		Events: calendar.FilterByMonth(upcoming, r.URL.Query().Get("month")),
	})
}
