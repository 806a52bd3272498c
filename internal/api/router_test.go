// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/recommend"
)

func TestRootBanner(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, &fakeStore{}), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "API Working" {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeStore{songs: []recommend.Item{song("a", "A", "rock")}})
	doRequest(t, router, http.MethodGet, "/api/recommend/u1", "")

	rec := doRequest(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	for _, name := range []string{"tunila_api_requests_total", "tunila_recommendations_total"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	rec := doRequest(t, router, http.MethodGet, "/health/live", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want client-supplied", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, &fakeStore{}), http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want 404", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", wantOrigin: "http://localhost:3000"},
		{name: "disallowed origin", origin: "https://evil.example", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/songs/like", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin != "" && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("credentials should be allowed for the web client")
			}
		})
	}
}

func TestCORSWithoutOriginsRejectsAll(t *testing.T) {
	noOrigins := func(c *config.Config) { c.Security.CORSOrigins = nil }
	router := newTestRouter(t, &fakeStore{}, noOrigins)

	req := httptest.NewRequest(http.MethodOptions, "/api/songs/like", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want none", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want none", got)
	}
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, &fakeStore{}, withRateLimit(2))

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = doRequest(t, router, http.MethodGet, "/api/songs", "").Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Health probes are not rate limited.
	for i := 0; i < 5; i++ {
		if rec := doRequest(t, router, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
			t.Fatalf("health probe %d = %d", i, rec.Code)
		}
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(nil)
	if cfg.RateLimitRequests != 100 || !cfg.CORSAllowCredentials {
		t.Errorf("defaults = %+v", cfg)
	}

	m := NewChiMiddleware(nil)
	if m.config == nil || len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("NewChiMiddleware(nil) config = %+v", m.config)
	}
}
