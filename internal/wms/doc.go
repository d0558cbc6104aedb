// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package wms talks to the upstream Web Map Service.
//
// It fetches and parses GetCapabilities documents, resolves them into a
// flat layer catalog, and builds request URLs (GetLegendGraphic, GetMap,
// GetCapabilities) for clients to consume directly.
//
// Resolution never fails from the caller's perspective: when the upstream
// is unreachable, slow, or returns malformed XML, the resolver degrades to
// a built-in catalog of known-good EMODnet layers and reports the degraded
// state alongside the result.
package wms
