// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oceanviz/benthoscope/internal/cache"
	"github.com/oceanviz/benthoscope/internal/config"
	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/models"
	"github.com/oceanviz/benthoscope/internal/wms"
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	catalog   *cache.CapabilityCache
	fetcher   wms.CapabilityFetcher
	version   string
	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, catalog *cache.CapabilityCache, fetcher wms.CapabilityFetcher, version string) *Handler {
	return &Handler{
		cfg:       cfg,
		catalog:   catalog,
		fetcher:   fetcher,
		version:   version,
		startTime: time.Now(),
	}
}

// Layers handles GET /api/layers.
//
// The response is a bare JSON array of layer descriptors. When the
// upstream cannot be resolved the built-in catalog is returned with the
// same shape and status 200; clients cannot tell the difference, which is
// the point.
func (h *Handler) Layers(w http.ResponseWriter, r *http.Request) {
	res := h.catalog.Get(r.Context())
	respondJSON(w, r, http.StatusOK, res.Layers)
}

// Capabilities handles GET /api/capabilities.
//
// The raw upstream GetCapabilities document is passed through untouched
// for clients that want the full metadata. Unlike the layer listing this
// endpoint has no fallback: when the upstream is unreachable the client
// gets a JSON error object instead of XML.
func (h *Handler) Capabilities(w http.ResponseWriter, r *http.Request) {
	doc, err := h.fetcher.FetchCapabilities(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Capabilities passthrough failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeExternalServiceFail, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write capabilities response")
	}
}

// Legend handles GET /api/legend/{layerName}.
//
// Pure string construction from configuration and the path remainder; no
// upstream request is made and no check that the layer exists. The
// wildcard route keeps layer names containing slashes intact.
func (h *Handler) Legend(w http.ResponseWriter, r *http.Request) {
	layerName := chi.URLParam(r, "*")
	if layerName == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "layer name required")
		return
	}

	respondJSON(w, r, http.StatusOK, models.LegendResponse{
		LegendURL: wms.LegendURL(h.cfg.WMS.BaseURL, layerName),
	})
}

// Config handles GET /api/config. The viewer page fetches this at load
// time to learn the WMS endpoint it should build tile requests against.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, models.ViewerConfig{
		WMSBaseURL:  h.cfg.WMS.BaseURL,
		WMSVersion:  h.cfg.WMS.Version,
		Attribution: h.cfg.WMS.Attribution,
	})
}

// TestMap handles GET /api/test-map. It returns the whole-world GetMap
// URL the connectivity test page embeds as an image.
func (h *Handler) TestMap(w http.ResponseWriter, r *http.Request) {
	layerName := strings.TrimSpace(r.URL.Query().Get("layer"))
	if layerName == "" {
		layerName = models.FallbackCatalog()[0].Name
	}

	respondJSON(w, r, http.StatusOK, map[string]string{
		"map_url": wms.MapURL(h.cfg.WMS.BaseURL, layerName),
	})
}
