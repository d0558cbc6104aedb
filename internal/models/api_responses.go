// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package models

import "time"

// APIError is the JSON error payload returned by endpoints that surface
// failures (only the capabilities passthrough does; the layer listing
// degrades silently to the fallback catalog instead).
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// RequestID is the request ID for tracing
	RequestID string `json:"request_id,omitempty"`
}

// LegendResponse is the payload of GET /api/legend/{layerName}.
type LegendResponse struct {
	LegendURL string `json:"legend_url"`
}

// ViewerConfig is the payload of GET /api/config. The embedded viewer page
// fetches it at load time instead of having values templated server-side.
type ViewerConfig struct {
	WMSBaseURL  string `json:"wms_base_url"`
	WMSVersion  string `json:"wms_version"`
	Attribution string `json:"attribution"`
}

// HealthStatus reports process and upstream health.
//
// Status is "healthy" when the last capability resolution came from the
// live service and "degraded" when the fallback catalog is being served.
// A degraded service still answers every viewer request.
type HealthStatus struct {
	Status          string     `json:"status"`
	Version         string     `json:"version"`
	UpstreamURL     string     `json:"upstream_url"`
	Degraded        bool       `json:"degraded"`
	DegradedReason  string     `json:"degraded_reason,omitempty"`
	LastResolution  *time.Time `json:"last_resolution,omitempty"`
	CatalogSize     int        `json:"catalog_size"`
	UptimeSeconds   float64    `json:"uptime_seconds"`
	CacheHitRatePct float64    `json:"cache_hit_rate_pct"`
}
