// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package api

import (
	"embed"
	"net/http"

	"github.com/oceanviz/benthoscope/internal/logging"
)

//go:embed static
var staticFS embed.FS

// ViewerIndex serves the embedded Leaflet viewer page.
func (h *Handler) ViewerIndex(w http.ResponseWriter, r *http.Request) {
	serveEmbedded(w, r, "static/index.html")
}

// ViewerTest serves the upstream connectivity test page.
func (h *Handler) ViewerTest(w http.ResponseWriter, r *http.Request) {
	serveEmbedded(w, r, "static/test.html")
}

func serveEmbedded(w http.ResponseWriter, r *http.Request, path string) {
	data, err := staticFS.ReadFile(path)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", path).Msg("Embedded asset missing")
		http.Error(w, "page not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write static response")
	}
}
