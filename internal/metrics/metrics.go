// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package metrics defines the Prometheus instrumentation surface:
// API endpoint latency and throughput, upstream WMS fetch outcomes,
// capability cache efficiency, and circuit breaker state.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream WMS Metrics
	UpstreamFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wms_upstream_fetch_duration_seconds",
			Help:    "Duration of upstream GetCapabilities fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	UpstreamFetchResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_upstream_fetch_results_total",
			Help: "Outcomes of upstream capability fetches",
		},
		[]string{"result"}, // "ok", "transport_error", "upstream_status", "timeout", "parse_error", "empty_catalog", "circuit_open"
	)

	FallbackServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wms_fallback_resolutions_total",
			Help: "Total number of resolutions served from the built-in fallback catalog",
		},
	)

	// Capability Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capability_cache_hits_total",
			Help: "Total number of capability cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capability_cache_misses_total",
			Help: "Total number of capability cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "capability_cache_entries",
			Help: "Current number of cached capability resolutions",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// Catalog State Metrics
	CatalogDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_degraded",
			Help: "Whether the current layer catalog is the fallback (1) or live (0)",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_layers",
			Help: "Number of layers in the current catalog",
		},
	)
)

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIRequest records a completed API request with its latency.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCatalogState publishes the degraded flag and catalog size gauges.
func RecordCatalogState(degraded bool, size int) {
	if degraded {
		CatalogDegraded.Set(1)
	} else {
		CatalogDegraded.Set(0)
	}
	CatalogSize.Set(float64(size))
}
