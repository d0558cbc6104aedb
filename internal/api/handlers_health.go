// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package api

import (
	"net/http"
	"time"

	"github.com/oceanviz/benthoscope/internal/models"
)

// Health handles GET /api/health. It reports the degraded flag from the
// most recent resolution without triggering a new one; a cold cache reads
// as healthy with zero layers until the first resolution lands.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:          "healthy",
		Version:         h.version,
		UpstreamURL:     h.cfg.WMS.BaseURL,
		UptimeSeconds:   time.Since(h.startTime).Seconds(),
		CacheHitRatePct: h.catalog.HitRate(),
	}

	if res, ok := h.catalog.Last(); ok {
		status.Degraded = res.Degraded
		status.DegradedReason = res.Reason
		status.CatalogSize = len(res.Layers)
		resolvedAt := res.ResolvedAt
		status.LastResolution = &resolvedAt
		if res.Degraded {
			status.Status = "degraded"
		}
	}

	respondJSON(w, r, http.StatusOK, status)
}

// HealthLive handles GET /api/health/live. Always 200 while the process
// can serve requests at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/health/ready. The service is ready as soon
// as it can answer catalog requests, which it always can thanks to the
// fallback; readiness does not depend on the upstream.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
