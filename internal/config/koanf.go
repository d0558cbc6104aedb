// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// defaultConfig returns the built-in defaults. These target the EMODnet
// Seabed Habitats GeoServer and are overridable per deployment.
func defaultConfig() *Config {
	return &Config{
		WMS: WMSConfig{
			BaseURL:     "https://ows.emodnet-seabedhabitats.eu/geoserver/emodnet_view/wms",
			Version:     "1.3.0",
			Timeout:     10 * time.Second,
			MaxLayers:   20,
			Attribution: "EMODnet Seabed Habitats",
		},
		Cache: CacheConfig{
			TTL:             5 * time.Minute,
			RefreshInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        4326,
			Timeout:     30 * time.Second,
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// envToKoanfPath maps flat environment variable names to koanf config paths.
// Only variables listed here are consulted; everything else in the process
// environment is ignored.
var envToKoanfPath = map[string]string{
	"WMS_BASE_URL":           "wms.base_url",
	"WMS_VERSION":            "wms.version",
	"WMS_TIMEOUT":            "wms.timeout",
	"WMS_MAX_LAYERS":         "wms.max_layers",
	"WMS_ATTRIBUTION":        "wms.attribution",
	"CACHE_TTL":              "cache.ttl",
	"CACHE_REFRESH_INTERVAL": "cache.refresh_interval",
	"HTTP_HOST":              "server.host",
	"HTTP_PORT":              "server.port",
	"HTTP_TIMEOUT":           "server.timeout",
	"CORS_ORIGINS":           "server.cors_origins",
	"LOG_LEVEL":              "logging.level",
	"LOG_FORMAT":             "logging.format",
	"LOG_CALLER":             "logging.caller",
}

// envTransformFunc translates an environment variable into its koanf path,
// or returns "" to skip it.
func envTransformFunc(s string) string {
	if path, ok := envToKoanfPath[strings.ToUpper(s)]; ok {
		return path
	}
	return ""
}

// findConfigFile locates an optional YAML config file. CONFIG_PATH takes
// precedence; otherwise well-known locations are probed in order.
func findConfigFile() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	candidates := []string{
		"config.yaml",
		"config.yml",
		"/etc/benthoscope/config.yaml",
		"/etc/benthoscope/config.yml",
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// LoadWithKoanf builds the configuration from defaults, an optional YAML
// file, and environment variables, then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	processSliceFields(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// processSliceFields splits comma-separated string values into slices for
// fields koanf unmarshals as []string. Environment variables can only
// carry flat strings, so CORS_ORIGINS="a,b" becomes ["a", "b"].
func processSliceFields(k *koanf.Koanf) {
	for _, path := range []string{"server.cors_origins"} {
		raw := k.Get(path)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		_ = k.Set(path, out)
	}
}
