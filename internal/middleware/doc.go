// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package middleware provides HTTP middleware shared across the API:
// request ID propagation, Prometheus instrumentation, and gzip
// compression. Middleware here wraps http.HandlerFunc; the router bridges
// it onto chi's http.Handler chain.
package middleware
