// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package services

import (
	"context"
	"time"

	"github.com/oceanviz/benthoscope/internal/cache"
	"github.com/oceanviz/benthoscope/internal/logging"
)

// RefresherService keeps the capability cache warm by refreshing it on a
// fixed interval. The first refresh runs immediately on start so the
// viewer's first request never waits on the upstream.
//
// Refreshing never fails (the resolver degrades to the fallback catalog
// internally), so this service only exits when its context is canceled.
type RefresherService struct {
	catalog  *cache.CapabilityCache
	interval time.Duration
	name     string
}

// NewRefresherService creates the refresher. An interval of zero disables
// periodic refresh after the initial warm-up.
func NewRefresherService(catalog *cache.CapabilityCache, interval time.Duration) *RefresherService {
	return &RefresherService{
		catalog:  catalog,
		interval: interval,
		name:     "capability-refresher",
	}
}

// Serve implements suture.Service.
func (s *RefresherService) Serve(ctx context.Context) error {
	res := s.catalog.Refresh(ctx)
	logging.Info().Bool("degraded", res.Degraded).Int("layers", len(res.Layers)).Msg("Initial capability resolution complete")

	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.catalog.Refresh(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *RefresherService) String() string {
	return s.name
}
