// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package wms

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/oceanviz/benthoscope/internal/config"
)

// maxCapabilitiesSize bounds how much of a GetCapabilities response is read.
// EMODnet's document is a few hundred KB; 8MB leaves ample headroom while
// preventing unbounded allocation from a misbehaving upstream.
const maxCapabilitiesSize = 8 * 1024 * 1024

// maxErrorBodySize limits how much of an error response body is read for
// diagnostics.
const maxErrorBodySize = 4 * 1024

// TransportError reports a failure to obtain a capabilities document from
// the upstream: connection refused, timeout, or a non-200 status.
type TransportError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("wms: capabilities request to %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("wms: capabilities request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CapabilityFetcher retrieves raw GetCapabilities documents.
//
// Implemented by Client for production use and by mocks in tests. The
// circuit breaker wrapper also satisfies it, so callers compose freely.
type CapabilityFetcher interface {
	FetchCapabilities(ctx context.Context) ([]byte, error)
}

// Client performs HTTP requests against the upstream WMS endpoint.
//
// Thread safety: safe for concurrent use. Each call builds its own request.
type Client struct {
	baseURL string
	version string
	client  *http.Client
}

// NewClient creates a WMS client from configuration. The HTTP timeout
// bounds the whole request including body read; one attempt, no retries.
func NewClient(cfg *config.WMSConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		version: cfg.Version,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchCapabilities performs a GetCapabilities request and returns the raw
// XML document. Any transport failure or non-200 status yields a
// *TransportError; the response body is never interpreted here.
func (c *Client) FetchCapabilities(ctx context.Context) ([]byte, error) {
	reqURL := CapabilitiesURL(c.baseURL, c.version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, maxErrorBodySize)
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCapabilitiesSize))
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return body, nil
}
