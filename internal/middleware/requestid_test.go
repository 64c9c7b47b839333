// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/alteat-recommend/internal/logging"
)

func serveWithRequestID(t *testing.T, header string) (responseID, ctxID, correlationID string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Header().Get(RequestIDHeader), ctxID, correlationID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	responseID, ctxID, correlationID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if ctxID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", ctxID, responseID)
	}
	if len(correlationID) != 8 {
		t.Errorf("correlation id = %q, want 8 chars", correlationID)
	}
}

func TestRequestID_UpstreamIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantKept bool
		wantID   string
	}{
		{name: "kept", header: "proxy-abc-123", wantKept: true, wantID: "proxy-abc-123"},
		{name: "control characters stripped", header: "abc\r\ndef", wantKept: true, wantID: "abcdef"},
		{name: "oversized replaced", header: strings.Repeat("a", 300), wantKept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			responseID, ctxID, _ := serveWithRequestID(t, tt.header)
			if responseID != ctxID {
				t.Errorf("header %q != context %q", responseID, ctxID)
			}
			if tt.wantKept && responseID != tt.wantID {
				t.Errorf("request id = %q, want %q", responseID, tt.wantID)
			}
			if !tt.wantKept {
				if _, err := uuid.Parse(responseID); err != nil {
					t.Errorf("request id = %q, want a generated UUID", responseID)
				}
			}
		})
	}
}
