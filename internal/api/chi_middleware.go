// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package api

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/oceanviz/benthoscope/internal/config"
)

// corsHandler builds the CORS middleware from configuration. The viewer is
// served from this process, but the API is also consumed by external map
// clients, so cross-origin reads stay open by default.
func corsHandler(cfg *config.ServerConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
