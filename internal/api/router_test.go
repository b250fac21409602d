// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/models"
)

func newTestServer(t *testing.T, mw *ChiMiddlewareConfig) *httptest.Server {
	t.Helper()
	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}
	router := NewRouter(newReadyHandler(t), NewChiMiddleware(mw))
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/health", http.StatusOK},
		{"/api/v1/recommendations?product=ITEM+0", http.StatusOK},
		{"/api/v1/recommendations?product=UNKNOWN", http.StatusOK},
		{"/api/v1/segments", http.StatusOK},
		{"/api/v1/segments/classify?recency=1&frequency=1&monetary=1", http.StatusOK},
		{"/api/v1/products?prefix=ITEM", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv, tt.path, nil)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestRouter_PostClassify(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.Client().Post(srv.URL+"/api/v1/segments/classify", "application/json",
		strings.NewReader(`{"recency":5,"frequency":10,"monetary":900}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/recommendations?product=ITEM+0", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
	var body models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != CodeMethodNotAllowed {
		t.Errorf("error = %+v, want %s", body.Error, CodeMethodNotAllowed)
	}
}

func TestRouter_RequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/v1/health", http.Header{"X-Request-Id": {"req-123"}})
	if got := resp.Header.Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}

	var body models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metadata.RequestID != "req-123" {
		t.Errorf("metadata.request_id = %q, want req-123", body.Metadata.RequestID)
	}

	generated := get(t, srv, "/api/v1/health", nil)
	if generated.Header.Get("X-Request-ID") == "" {
		t.Error("no request ID generated")
	}
}

func TestRouter_Gzip(t *testing.T) {
	srv := newTestServer(t, nil)

	// Setting Accept-Encoding explicitly disables transparent decompression.
	resp := get(t, srv, "/api/v1/segments", http.Header{"Accept-Encoding": {"gzip"}})
	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", resp.Header.Get("Content-Encoding"))
	}

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"status":"success"`) {
		t.Errorf("body = %s", data)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	mw := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	})
	srv := newTestServer(t, mw)

	for i := 0; i < 2; i++ {
		if resp := get(t, srv, "/api/v1/health", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp := get(t, srv, "/api/v1/health", nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	var body models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v, want %s", body.Error, CodeRateLimited)
	}

	// /metrics sits outside the limited group.
	if resp := get(t, srv, "/metrics", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("/metrics status = %d, want 200", resp.StatusCode)
	}
}

func TestRouter_CORS(t *testing.T) {
	mw := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		CORSOrigins:       []string{"https://shop.example.com"},
		RateLimitDisabled: true,
	})
	srv := newTestServer(t, mw)

	tests := []struct {
		origin string
		want   string
	}{
		{"https://shop.example.com", "https://shop.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			resp := get(t, srv, "/api/v1/health", http.Header{"Origin": {tt.origin}})
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{})
	def := DefaultChiMiddlewareConfig()
	if cfg.RateLimitRequests != def.RateLimitRequests || cfg.RateLimitWindow != def.RateLimitWindow {
		t.Errorf("zero security config changed limits: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want none", cfg.CORSAllowedOrigins)
	}
}
