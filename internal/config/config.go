// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package config loads and validates application configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//  1. Environment variables (WMS_BASE_URL, HTTP_PORT, ...)
//  2. Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"

	"github.com/oceanviz/benthoscope/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	WMS     WMSConfig     `koanf:"wms"`
	Cache   CacheConfig   `koanf:"cache"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// WMSConfig configures the upstream Web Map Service.
type WMSConfig struct {
	// BaseURL is the WMS endpoint all capability, map, and legend requests
	// are built against.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Version is the WMS protocol version for GetCapabilities requests.
	// Legend and map URLs pin version 1.1.0 regardless (the upstream
	// GeoServer serves GetLegendGraphic under 1.1.0 semantics).
	Version string `koanf:"version" validate:"oneof=1.0.0 1.1.0 1.1.1 1.3.0"`

	// Timeout bounds a single capability fetch. One attempt, no retries.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s,max=5m"`

	// MaxLayers caps how many layers a resolution surfaces.
	MaxLayers int `koanf:"max_layers" validate:"min=1,max=1000"`

	// Attribution is the credit string the viewer attaches to WMS overlays.
	Attribution string `koanf:"attribution"`
}

// CacheConfig configures the read-through capability cache.
type CacheConfig struct {
	// TTL is how long a resolved catalog stays fresh.
	TTL time.Duration `koanf:"ttl" validate:"min=1s"`

	// RefreshInterval is how often the background refresher re-warms the
	// cache. Zero disables background refresh; resolution then happens
	// lazily on request.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// CORSOrigins lists allowed cross-origin request origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all layered sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks the configuration against its struct validation rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
