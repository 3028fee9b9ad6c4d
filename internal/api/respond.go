// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/stagepass/stagepass/internal/logging"
)

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondMessage writes the {"message": ...} shape the admin UI expects.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
