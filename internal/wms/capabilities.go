// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package wms

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/oceanviz/benthoscope/internal/models"
)

// ParseError reports a capabilities document that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wms: failed to parse capabilities document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// capabilitiesDoc mirrors the subset of a WMS_Capabilities (or 1.1.x
// WMT_MS_Capabilities) document we care about. Field names are matched by
// local name only, so namespaced (1.3.0) and plain (1.1.x) documents decode
// identically.
type capabilitiesDoc struct {
	Capability struct {
		Layers []layerNode `xml:"Layer"`
	} `xml:"Capability"`
}

// layerNode is one <Layer> element. WMS nests layers arbitrarily deep; the
// root layer usually carries only a Title and groups the named layers below
// it.
type layerNode struct {
	Name     string      `xml:"Name"`
	Title    string      `xml:"Title"`
	Abstract string      `xml:"Abstract"`
	Layers   []layerNode `xml:"Layer"`
}

// extractLayers decodes a capabilities document and returns every named
// layer in document order, parents before children. Unnamed layers (group
// containers) are descended into but not reported. A layer with a missing
// or blank Title gets its name as the title. A document that does not
// decode as XML yields a *ParseError.
func extractLayers(doc []byte) ([]models.LayerDescriptor, error) {
	var caps capabilitiesDoc

	dec := xml.NewDecoder(bytes.NewReader(doc))
	// GetCapabilities documents in the wild declare ISO-8859-1 and friends.
	dec.CharsetReader = charsetReader

	if err := dec.Decode(&caps); err != nil {
		return nil, &ParseError{Err: err}
	}

	var layers []models.LayerDescriptor
	var walk func(nodes []layerNode)
	walk = func(nodes []layerNode) {
		for _, n := range nodes {
			if name := strings.TrimSpace(n.Name); name != "" {
				title := strings.TrimSpace(n.Title)
				if title == "" {
					title = name
				}
				layers = append(layers, models.LayerDescriptor{
					Name:        name,
					Title:       title,
					Description: strings.TrimSpace(n.Abstract),
				})
			}
			walk(n.Layers)
		}
	}
	walk(caps.Capability.Layers)

	return layers, nil
}

// charsetReader accepts the encodings GeoServer instances commonly declare.
// ISO-8859-1 maps byte-for-byte onto the first 256 Unicode code points, so
// a small translating reader suffices without pulling in a charset library.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "us-ascii", "":
		return input, nil
	case "iso-8859-1", "latin1":
		return &latin1Reader{r: input}, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

type latin1Reader struct {
	r       io.Reader
	pending []byte
	err     error
}

func (lr *latin1Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(lr.pending) > 0 {
		n := copy(p, lr.pending)
		lr.pending = lr.pending[n:]
		if len(lr.pending) == 0 {
			err := lr.err
			lr.err = nil
			return n, err
		}
		return n, nil
	}
	if lr.err != nil {
		err := lr.err
		lr.err = nil
		return 0, err
	}

	// Each Latin-1 byte expands to at most 2 UTF-8 bytes, so reading
	// len(p)/2 input bytes keeps the translated output within len(p).
	// Output that still does not fit (len(p) == 1) is held back along
	// with the underlying error until the next call.
	buf := make([]byte, max(len(p)/2, 1))
	n, err := lr.r.Read(buf)
	out := make([]byte, 0, 2*n)
	for _, b := range buf[:n] {
		if b < 0x80 {
			out = append(out, b)
		} else {
			out = append(out, 0xC0|b>>6, 0x80|b&0x3F)
		}
	}
	w := copy(p, out)
	if w < len(out) {
		lr.pending = out[w:]
		lr.err = err
		return w, nil
	}
	return w, err
}
