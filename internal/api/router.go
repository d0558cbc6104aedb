// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oceanviz/benthoscope/internal/middleware"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler *Handler
	cors    func(http.Handler) http.Handler
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler: handler,
		cors:    corsHandler(&handler.cfg.Server),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler so the shared middleware package plugs
// into r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.cors) // CORS must be global to handle OPTIONS preflight

	// Health endpoints stay outside the instrumented group so scraping
	// them does not skew API latency metrics.
	r.Route("/api/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Core API endpoints.
	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Get("/layers", router.handler.Layers)
		r.Get("/capabilities", router.handler.Capabilities)
		r.Get("/config", router.handler.Config)
		r.Get("/test-map", router.handler.TestMap)

		// Wildcard so layer names containing slashes survive routing.
		r.Get("/legend/*", router.handler.Legend)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	// Embedded viewer pages.
	r.Get("/", router.handler.ViewerIndex)
	r.Get("/test", router.handler.ViewerTest)

	return r
}
