// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package wms

import "fmt"

// legendVersion pins GetLegendGraphic requests to WMS 1.1.0. The upstream
// GeoServer serves legends under 1.1.0 semantics regardless of the version
// negotiated for capabilities.
const legendVersion = "1.1.0"

// CapabilitiesURL builds a GetCapabilities request URL for the given
// endpoint and protocol version.
func CapabilitiesURL(baseURL, version string) string {
	return fmt.Sprintf("%s?service=WMS&version=%s&request=GetCapabilities", baseURL, version)
}

// LegendURL builds a GetLegendGraphic request URL for a layer.
//
// The layer name is interpolated verbatim. Upstream layer names are plain
// identifiers (no spaces or reserved URL characters), and GeoServer expects
// the raw name; escaping here would break names it has already published.
// The output depends only on the inputs, so identical calls always produce
// identical URLs.
func LegendURL(baseURL, layerName string) string {
	return fmt.Sprintf("%s?service=WMS&version=%s&request=GetLegendGraphic&layer=%s&format=image/png",
		baseURL, legendVersion, layerName)
}

// MapURL builds a whole-world GetMap request URL for a layer, used by the
// connectivity test page to render a single probe image.
func MapURL(baseURL, layerName string) string {
	return fmt.Sprintf("%s?service=WMS&version=%s&request=GetMap&layers=%s&styles=&bbox=-180,-90,180,90&width=768&height=384&srs=EPSG:4326&format=image/png&transparent=true",
		baseURL, legendVersion, layerName)
}
