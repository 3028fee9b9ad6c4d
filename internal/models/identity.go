// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package models

// UserMetadata carries the application-specific attributes stored on an
// admin user in the identity provider.
type UserMetadata struct {
	Role    string `json:"role,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// UserData is the mutable portion of an admin user, sent to the identity
// provider on create and update.
type UserData struct {
	Email        string        `json:"email,omitempty" validate:"omitempty,email"`
	Password     string        `json:"password,omitempty"`
	Username     string        `json:"username,omitempty"`
	Name         string        `json:"name,omitempty"`
	Picture      string        `json:"picture,omitempty" validate:"omitempty,url"`
	Nickname     string        `json:"nickname,omitempty"`
	UserMetadata *UserMetadata `json:"user_metadata,omitempty"`
}

// IdentityUser is an admin user as returned by the identity provider's
// management API.
type IdentityUser struct {
	UserID       string        `json:"user_id"`
	Email        string        `json:"email"`
	Name         string        `json:"name,omitempty"`
	Nickname     string        `json:"nickname,omitempty"`
	Picture      string        `json:"picture,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	LastLogin    string        `json:"last_login,omitempty"`
	UserMetadata *UserMetadata `json:"user_metadata,omitempty"`
}

// Identity proxy actions accepted by the /api/v1/auth0 endpoint.
const (
	ActionCreateUser         = "createUser"
	ActionGetAllUsers        = "getAllUsers"
	ActionUpdateUserDetails  = "updateUserDetails"
	ActionChangeUserPassword = "changeUserPassword"
	ActionDeleteUser         = "deleteUser"
)

// IdentityProxyRequest is the body of the identity management proxy
// endpoint. Which optional fields are required depends on Action.
type IdentityProxyRequest struct {
	Action      string    `json:"action" validate:"required"`
	UserID      string    `json:"userId,omitempty"`
	UserData    *UserData `json:"userData,omitempty"`
	NewPassword string    `json:"newPassword,omitempty"`
}

// LoginRequest is the body of the admin login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the profile carried inside a session token.
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      SessionUser `json:"user"`
}
