// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oceanviz/benthoscope/internal/models"
	"github.com/oceanviz/benthoscope/internal/wms"
)

// countingResolver counts resolutions and returns a canned result.
type countingResolver struct {
	mu    sync.Mutex
	calls int
	res   wms.Resolution
}

func (r *countingResolver) Resolve(_ context.Context) wms.Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	res := r.res
	res.ResolvedAt = time.Now()
	return res
}

func (r *countingResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func liveResolution() wms.Resolution {
	return wms.Resolution{
		Layers: []models.LayerDescriptor{
			{Name: "all_eusm2021", Title: "EUSeaMap 2021"},
		},
	}
}

func TestGetPopulatesOnFirstCall(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	res := c.Get(t.Context())
	if resolver.callCount() != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.callCount())
	}
	if len(res.Layers) != 1 || res.Layers[0].Name != "all_eusm2021" {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestGetServesFreshEntryWithoutResolving(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	c.Get(t.Context())
	c.Get(t.Context())
	c.Get(t.Context())

	if resolver.callCount() != 1 {
		t.Errorf("resolver calls = %d, want 1 (hits should not resolve)", resolver.callCount())
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 2 hits / 1 miss", stats)
	}
}

func TestGetResolvesAgainAfterTTL(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, 10*time.Millisecond)

	c.Get(t.Context())
	time.Sleep(20 * time.Millisecond)
	c.Get(t.Context())

	if resolver.callCount() != 2 {
		t.Errorf("resolver calls = %d, want 2 after TTL expiry", resolver.callCount())
	}
}

func TestDegradedResolutionIsCached(t *testing.T) {
	resolver := &countingResolver{res: wms.Resolution{
		Layers:   models.FallbackCatalog(),
		Degraded: true,
		Reason:   "transport_error",
	}}
	c := New(resolver, time.Minute)

	c.Get(t.Context())
	res := c.Get(t.Context())

	if resolver.callCount() != 1 {
		t.Errorf("resolver calls = %d, want degraded result cached", resolver.callCount())
	}
	if !res.Degraded || res.Reason != "transport_error" {
		t.Errorf("cached resolution = %+v, want degraded with reason preserved", res)
	}
}

func TestRefreshBypassesFreshEntry(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	c.Get(t.Context())
	c.Refresh(t.Context())

	if resolver.callCount() != 2 {
		t.Errorf("resolver calls = %d, want Refresh to resolve unconditionally", resolver.callCount())
	}
	stats := c.Stats()
	if stats.Refreshes != 1 {
		t.Errorf("Refreshes = %d, want 1", stats.Refreshes)
	}
}

func TestLast(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	if _, ok := c.Last(); ok {
		t.Error("Last() reported a populated cache before any resolution")
	}

	c.Get(t.Context())
	res, ok := c.Last()
	if !ok {
		t.Fatal("Last() reported empty cache after Get")
	}
	if len(res.Layers) != 1 {
		t.Errorf("Last() layers = %d, want 1", len(res.Layers))
	}
	if resolver.callCount() != 1 {
		t.Errorf("Last() must not resolve; calls = %d", resolver.callCount())
	}
}

func TestHitRate(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	if got := c.HitRate(); got != 0 {
		t.Errorf("HitRate() = %v before any reads, want 0", got)
	}

	c.Get(t.Context()) // miss
	c.Get(t.Context()) // hit
	c.Get(t.Context()) // hit
	c.Get(t.Context()) // hit

	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestConcurrentGets(t *testing.T) {
	resolver := &countingResolver{res: liveResolution()}
	c := New(resolver, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := c.Get(context.Background())
			if len(res.Layers) != 1 {
				t.Errorf("concurrent Get returned %d layers", len(res.Layers))
			}
		}()
	}
	wg.Wait()
}
