// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package wms

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/metrics"
	"github.com/oceanviz/benthoscope/internal/models"
)

// Resolution is the outcome of resolving the layer catalog. Exactly two
// shapes exist: a live catalog from the upstream (Degraded=false) or the
// built-in fallback catalog (Degraded=true, Reason set). Callers always get
// a usable catalog; Degraded tells them which one.
type Resolution struct {
	Layers     []models.LayerDescriptor
	Degraded   bool
	Reason     string
	ResolvedAt time.Time
}

// Resolver turns raw capabilities documents into layer catalogs.
//
// Thread safety: safe for concurrent use; it holds no mutable state.
type Resolver struct {
	fetcher   CapabilityFetcher
	maxLayers int
}

// NewResolver creates a resolver over the given fetcher. maxLayers caps how
// many layers a live resolution surfaces; layers beyond the cap are
// silently dropped in document order.
func NewResolver(fetcher CapabilityFetcher, maxLayers int) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		maxLayers: maxLayers,
	}
}

// Resolve fetches, parses, and filters the upstream catalog.
//
// Any failure along the way (transport error, non-200 status, malformed
// XML, or a document yielding zero usable layers) degrades to the built-in
// fallback catalog rather than returning an error. The failure is logged
// and counted, never propagated: from the caller's perspective resolution
// cannot fail.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	started := time.Now()

	doc, err := r.fetcher.FetchCapabilities(ctx)
	metrics.UpstreamFetchDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return r.degrade(ctx, classifyFetchError(err), err)
	}

	layers, err := extractLayers(doc)
	if err != nil {
		return r.degrade(ctx, "parse_error", err)
	}

	usable := filterLayers(layers, r.maxLayers)
	if len(usable) == 0 {
		return r.degrade(ctx, "empty_catalog", errors.New("capabilities document contains no usable layers"))
	}

	metrics.UpstreamFetchResults.WithLabelValues("ok").Inc()
	logging.Ctx(ctx).Debug().Int("layers", len(usable)).Msg("Resolved live layer catalog")

	return Resolution{
		Layers:     usable,
		ResolvedAt: time.Now(),
	}
}

// degrade builds the fallback resolution for a failed fetch or parse.
func (r *Resolver) degrade(ctx context.Context, reason string, err error) Resolution {
	metrics.UpstreamFetchResults.WithLabelValues(reason).Inc()
	metrics.FallbackServed.Inc()
	logging.Ctx(ctx).Warn().Err(err).Str("reason", reason).Msg("Falling back to built-in layer catalog")

	return Resolution{
		Layers:     models.FallbackCatalog(),
		Degraded:   true,
		Reason:     reason,
		ResolvedAt: time.Now(),
	}
}

// filterLayers drops namespaced layer names and applies the catalog cap.
// Names containing ':' are workspace-qualified duplicates of layers the
// upstream also publishes under their plain name; the viewer wants the
// plain ones.
func filterLayers(layers []models.LayerDescriptor, maxLayers int) []models.LayerDescriptor {
	out := make([]models.LayerDescriptor, 0, min(len(layers), maxLayers))
	for _, l := range layers {
		if strings.Contains(l.Name, ":") {
			continue
		}
		out = append(out, l)
		if len(out) == maxLayers {
			break
		}
	}
	return out
}

// classifyFetchError maps a fetch failure to a metrics/reason label.
func classifyFetchError(err error) string {
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		return "upstream_status"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, errCircuitOpen) {
		return "circuit_open"
	}
	return "transport_error"
}
