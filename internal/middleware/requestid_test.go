// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oceanviz/benthoscope/internal/logging"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var seenID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/layers", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seenID == "" {
		t.Error("no request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("response header X-Request-ID = %q, context has %q", got, seenID)
	}
}

func TestRequestIDPassesThroughExisting(t *testing.T) {
	var seenID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/layers", nil)
	req.Header.Set("X-Request-ID", "upstream-id-123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seenID != "upstream-id-123" {
		t.Errorf("request ID = %q, want upstream-id-123", seenID)
	}
}

func TestRequestIDPopulatesLoggingContext(t *testing.T) {
	var loggingID, correlationID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		loggingID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/legend/substrate", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if loggingID == "" {
		t.Error("logging context missing request ID")
	}
	if correlationID == "" {
		t.Error("logging context missing correlation ID")
	}
}

func TestGetRequestIDEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() = %q on bare context, want empty", got)
	}
}
