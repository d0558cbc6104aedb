// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package main is the entry point for the Benthoscope server.
//
// Benthoscope is a thin glue layer between web map clients and the EMODnet
// Seabed Habitats WMS (Web Map Service). It resolves the upstream layer
// catalog from GetCapabilities documents, builds legend and map URLs, and
// serves an embedded Leaflet viewer. When the upstream is unreachable or
// returns malformed XML the service degrades to a built-in catalog of
// known-good habitat layers; clients never see an error from the layer
// listing.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and optional config file (Koanf v2)
//  2. WMS client: upstream HTTP client wrapped in a circuit breaker
//  3. Resolver and cache: capability resolution with a read-through TTL cache
//  4. HTTP server: REST API plus embedded viewer pages
//  5. Supervisor tree: background refresher and HTTP server under suture
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config.yaml, built-in defaults.
// The most common settings:
//
//	export WMS_BASE_URL=https://ows.emodnet-seabedhabitats.eu/geoserver/emodnet_view/wms
//	export WMS_TIMEOUT=10s
//	export CACHE_TTL=5m
//	export HTTP_PORT=4326
//	./benthoscope
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops accepting
// connections and waits up to 10 seconds for in-flight requests.
//
// # Port 4326
//
// The default port 4326 references EPSG:4326 (WGS 84), the coordinate
// system WMS requests in this service are expressed in.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oceanviz/benthoscope/internal/api"
	"github.com/oceanviz/benthoscope/internal/cache"
	"github.com/oceanviz/benthoscope/internal/config"
	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/supervisor"
	"github.com/oceanviz/benthoscope/internal/supervisor/services"
	"github.com/oceanviz/benthoscope/internal/wms"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger for config errors; config not yet available.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Benthoscope")
	logging.Info().
		Str("wms_base_url", cfg.WMS.BaseURL).
		Str("wms_version", cfg.WMS.Version).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Configuration loaded")

	// Upstream client, circuit breaker, resolver, cache.
	client := wms.NewClient(&cfg.WMS)
	fetcher := wms.NewCircuitBreakerClient(client)
	resolver := wms.NewResolver(fetcher, cfg.WMS.MaxLayers)
	catalog := cache.New(resolver, cfg.Cache.TTL)

	// HTTP surface.
	handler := api.NewHandler(cfg, catalog, fetcher, version)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddUpstreamService(services.NewRefresherService(catalog, cfg.Cache.RefreshInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
