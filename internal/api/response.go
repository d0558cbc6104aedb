// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package api provides the HTTP surface: layer catalog, capabilities
// passthrough, legend URLs, viewer configuration, and health endpoints.
//
// Successful responses carry the payload bare, with no envelope: the
// viewer consumes /api/layers as a plain JSON array. Errors use a small
// structured object with a machine-readable code and the request ID.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/models"
)

// Error codes for API responses.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// respondJSON writes the payload as the entire response body.
func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes a structured error object with the request ID for
// tracing.
func respondError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	respondJSON(w, r, statusCode, models.APIError{
		Code:      code,
		Message:   message,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}
