// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

// Package models defines the wire types shared by the WMS resolver and the
// HTTP API.
package models

// LayerDescriptor describes a single WMS layer as presented to the viewer.
//
// Name is the identifier used verbatim in downstream WMS requests
// (GetMap, GetLegendGraphic). Title is human-readable and falls back to
// Name when the capability document carries no title. Description may be
// empty. Values are immutable once constructed.
type LayerDescriptor struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// fallbackCatalog lists the EMODnet layers known to exist on the upstream
// service. It is served whenever live capability resolution fails or yields
// nothing usable, so the viewer always has something to display.
var fallbackCatalog = []LayerDescriptor{
	{
		Name:        "all_eusm2021",
		Title:       "EUSeaMap 2021 - All Habitats",
		Description: "Broad-scale seabed habitat map for Europe",
	},
	{
		Name:        "be_eusm2021",
		Title:       "EUSeaMap 2021 - Benthic Habitats",
		Description: "Benthic broad-scale habitat map",
	},
	{
		Name:        "ospar_threatened",
		Title:       "OSPAR Threatened Habitats",
		Description: "OSPAR threatened and/or declining habitats",
	},
	{
		Name:        "substrate",
		Title:       "Seabed Substrate",
		Description: "Seabed substrate types",
	},
	{
		Name:        "confidence",
		Title:       "Confidence Assessment",
		Description: "Confidence in habitat predictions",
	},
	{
		Name:        "annexiMaps_all",
		Title:       "Annex I Habitats",
		Description: "Habitats Directive Annex I habitat types",
	},
}

// FallbackCatalog returns the static layer catalog. A fresh slice is
// returned on every call so callers cannot mutate the package-level copy.
func FallbackCatalog() []LayerDescriptor {
	out := make([]LayerDescriptor, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	return out
}

// FallbackCatalogSize is the number of entries in the static catalog.
const FallbackCatalogSize = 6
