// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package cache provides a read-through TTL cache for capability
// resolutions.
//
// The cache holds the single most recent resolution; a fresh entry is
// served without touching the upstream, a stale or missing entry triggers
// resolution through the configured resolver. A degraded resolution is
// cached like any other so a flapping upstream is not hammered on every
// request.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/metrics"
	"github.com/oceanviz/benthoscope/internal/wms"
)

// Stats reports cache efficiency counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Refreshes uint64
}

// CatalogResolver is the upstream dependency of the cache. Implemented by
// *wms.Resolver.
type CatalogResolver interface {
	Resolve(ctx context.Context) wms.Resolution
}

// CapabilityCache is a read-through cache over a CatalogResolver.
//
// Thread safety: safe for concurrent use.
type CapabilityCache struct {
	resolver CatalogResolver
	ttl      time.Duration

	mu        sync.RWMutex
	current   wms.Resolution
	expiresAt time.Time
	stats     Stats
}

// New creates a capability cache. The cache starts empty; the first Get
// (or a background Refresh) populates it.
func New(resolver CatalogResolver, ttl time.Duration) *CapabilityCache {
	return &CapabilityCache{
		resolver: resolver,
		ttl:      ttl,
	}
}

// Get returns the cached resolution when fresh, resolving through to the
// upstream otherwise. Concurrent callers during a miss may each trigger a
// resolution; the upstream fetch is cheap relative to the TTL window and
// the last writer wins.
func (c *CapabilityCache) Get(ctx context.Context) wms.Resolution {
	c.mu.RLock()
	if !c.expiresAt.IsZero() && time.Now().Before(c.expiresAt) {
		res := c.current
		c.mu.RUnlock()

		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		metrics.CacheHits.Inc()
		return res
	}
	c.mu.RUnlock()

	metrics.CacheMisses.Inc()
	return c.refresh(ctx, true)
}

// Refresh resolves unconditionally and replaces the cached entry. Used by
// the background refresher to keep the catalog warm so requests rarely
// wait on the upstream.
func (c *CapabilityCache) Refresh(ctx context.Context) wms.Resolution {
	return c.refresh(ctx, false)
}

func (c *CapabilityCache) refresh(ctx context.Context, countMiss bool) wms.Resolution {
	res := c.resolver.Resolve(ctx)

	c.mu.Lock()
	c.current = res
	c.expiresAt = time.Now().Add(c.ttl)
	if countMiss {
		c.stats.Misses++
	} else {
		c.stats.Refreshes++
	}
	c.mu.Unlock()

	metrics.CacheEntries.Set(1)
	metrics.RecordCatalogState(res.Degraded, len(res.Layers))
	logging.Ctx(ctx).Debug().Bool("degraded", res.Degraded).Int("layers", len(res.Layers)).Msg("Capability cache refreshed")

	return res
}

// Last returns the most recent resolution without triggering a refresh,
// and whether the cache has been populated at all. Used by health checks.
func (c *CapabilityCache) Last() (wms.Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, !c.expiresAt.IsZero()
}

// Stats returns a snapshot of the cache counters.
func (c *CapabilityCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage, or 0 when the cache
// has served no reads yet.
func (c *CapabilityCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total) * 100
}
