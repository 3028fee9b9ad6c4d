// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAborted is returned when a request's context was cancelled by the
// caller. It is not a real failure: a newer request superseded this one and
// the caller is expected to discard the result. Timeouts are NOT aborts;
// they surface as transport errors.
var ErrAborted = errors.New("request aborted")

// APIError is a non-success response from the events backend. Message
// prefers the backend's structured error/message field, falling back to
// "HTTP <status>".
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAborted reports whether err is the superseded-request outcome.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0 for transport and
// decoding failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// errorBody is the structured error shape the backend returns on failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newAPIError builds an APIError from a non-success response body.
func newAPIError(status int, body errorBody) *APIError {
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{Status: status, Message: msg}
}
