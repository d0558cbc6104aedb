// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package models

import "testing"

func TestFallbackCatalog_Size(t *testing.T) {
	catalog := FallbackCatalog()
	if len(catalog) != FallbackCatalogSize {
		t.Fatalf("expected %d fallback layers, got %d", FallbackCatalogSize, len(catalog))
	}
}

func TestFallbackCatalog_Invariants(t *testing.T) {
	for _, layer := range FallbackCatalog() {
		if layer.Name == "" {
			t.Error("fallback layer with empty name")
		}
		if layer.Title == "" {
			t.Errorf("fallback layer %q with empty title", layer.Name)
		}
		for _, r := range layer.Name {
			if r == ':' {
				t.Errorf("fallback layer %q contains namespace separator", layer.Name)
			}
		}
	}
}

func TestFallbackCatalog_Order(t *testing.T) {
	want := []string{
		"all_eusm2021",
		"be_eusm2021",
		"ospar_threatened",
		"substrate",
		"confidence",
		"annexiMaps_all",
	}

	catalog := FallbackCatalog()
	for i, name := range want {
		if catalog[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, catalog[i].Name)
		}
	}
}

func TestFallbackCatalog_ReturnsCopy(t *testing.T) {
	first := FallbackCatalog()
	first[0].Name = "mutated"

	second := FallbackCatalog()
	if second[0].Name != "all_eusm2021" {
		t.Error("mutating a returned catalog leaked into the package copy")
	}
}
