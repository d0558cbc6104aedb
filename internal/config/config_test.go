// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.WMS.BaseURL != "https://ows.emodnet-seabedhabitats.eu/geoserver/emodnet_view/wms" {
		t.Errorf("WMS.BaseURL = %q, want EMODnet default", cfg.WMS.BaseURL)
	}
	if cfg.WMS.Timeout != 10*time.Second {
		t.Errorf("WMS.Timeout = %v, want 10s", cfg.WMS.Timeout)
	}
	if cfg.WMS.MaxLayers != 20 {
		t.Errorf("WMS.MaxLayers = %d, want 20", cfg.WMS.MaxLayers)
	}
	if cfg.Server.Port != 4326 {
		t.Errorf("Server.Port = %d, want 4326", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WMS_BASE_URL", "https://example.org/geoserver/wms")
	t.Setenv("WMS_MAX_LAYERS", "5")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.WMS.BaseURL != "https://example.org/geoserver/wms" {
		t.Errorf("WMS.BaseURL = %q, want env override", cfg.WMS.BaseURL)
	}
	if cfg.WMS.MaxLayers != 5 {
		t.Errorf("WMS.MaxLayers = %d, want 5", cfg.WMS.MaxLayers)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("wms:\n  version: \"1.1.1\"\n  max_layers: 7\nserver:\n  port: 8088\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.WMS.Version != "1.1.1" {
		t.Errorf("WMS.Version = %q, want 1.1.1", cfg.WMS.Version)
	}
	if cfg.WMS.MaxLayers != 7 {
		t.Errorf("WMS.MaxLayers = %d, want 7", cfg.WMS.MaxLayers)
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	// Unset keys keep their defaults.
	if cfg.WMS.Timeout != 10*time.Second {
		t.Errorf("WMS.Timeout = %v, want default 10s", cfg.WMS.Timeout)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8088\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want env to override file", cfg.Server.Port)
	}
}

func TestValidationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad base url", "WMS_BASE_URL", "not a url"},
		{"bad version", "WMS_VERSION", "2.0.0"},
		{"port too large", "HTTP_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero max layers", "WMS_MAX_LAYERS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadWithKoanf(); err == nil {
				t.Errorf("LoadWithKoanf() with %s=%s: want error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"WMS_BASE_URL", "wms.base_url"},
		{"wms_base_url", "wms.base_url"},
		{"HTTP_PORT", "server.port"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListenAddr(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.ListenAddr(); got != "0.0.0.0:4326" {
		t.Errorf("ListenAddr() = %q, want 0.0.0.0:4326", got)
	}
}
