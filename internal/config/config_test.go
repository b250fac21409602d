// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Segmentation.Clusters != 5 {
		t.Errorf("Segmentation.Clusters = %d, want 5", cfg.Segmentation.Clusters)
	}
	if cfg.Segmentation.Seed != 42 {
		t.Errorf("Segmentation.Seed = %d, want 42", cfg.Segmentation.Seed)
	}
	if cfg.Segmentation.Labeling != LabelingStatic {
		t.Errorf("Segmentation.Labeling = %q, want %q", cfg.Segmentation.Labeling, LabelingStatic)
	}
	if cfg.Recommend.DefaultTopN != 5 {
		t.Errorf("Recommend.DefaultTopN = %d, want 5", cfg.Recommend.DefaultTopN)
	}
	if cfg.Artifacts.Backend != BackendFile {
		t.Errorf("Artifacts.Backend = %q, want %q", cfg.Artifacts.Backend, BackendFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadWithKoanf_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
data:
  path: /data/retail.csv
artifacts:
  backend: badger
  dir: /data/artifacts
segmentation:
  labeling: ranked
  n_init: 3
recommend:
  cache_ttl: 2m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEGMENT_SEED", "7")

	cfg, err := LoadWithKoanf(path)
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.Path != "/data/retail.csv" {
		t.Errorf("Data.Path = %q, want /data/retail.csv", cfg.Data.Path)
	}
	if cfg.Artifacts.Backend != BackendBadger {
		t.Errorf("Artifacts.Backend = %q, want badger", cfg.Artifacts.Backend)
	}
	if cfg.Segmentation.Labeling != LabelingRanked || cfg.Segmentation.NInit != 3 {
		t.Errorf("Segmentation = %+v, want ranked labeling with n_init 3", cfg.Segmentation)
	}
	if cfg.Segmentation.Seed != 7 {
		t.Errorf("Segmentation.Seed = %d, want 7", cfg.Segmentation.Seed)
	}
	if cfg.Recommend.CacheTTL != 2*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 2m", cfg.Recommend.CacheTTL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Recommend.DefaultTopN != 5 {
		t.Errorf("untouched default changed: DefaultTopN = %d", cfg.Recommend.DefaultTopN)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ARTIFACTS_BACKEND", "s3")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "ARTIFACTS_BACKEND") {
		t.Fatalf("Load() error = %v, want ARTIFACTS_BACKEND validation error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty data path", func(c *Config) { c.Data.Path = " " }, "DATA_PATH"},
		{"unknown backend", func(c *Config) { c.Artifacts.Backend = "redis" }, "ARTIFACTS_BACKEND"},
		{"negative reload", func(c *Config) { c.Artifacts.ReloadInterval = -time.Second }, "ARTIFACTS_RELOAD"},
		{"reload disabled", func(c *Config) { c.Artifacts.ReloadInterval = 0 }, ""},
		{"zero clusters", func(c *Config) { c.Segmentation.Clusters = 0 }, "SEGMENT_CLUSTERS"},
		{"ranked needs five", func(c *Config) {
			c.Segmentation.Clusters = 4
			c.Segmentation.Labeling = LabelingRanked
		}, "exactly 5 clusters"},
		{"static allows four", func(c *Config) { c.Segmentation.Clusters = 4 }, ""},
		{"unknown labeling", func(c *Config) { c.Segmentation.Labeling = "alpha" }, "SEGMENT_LABELING"},
		{"top n above max", func(c *Config) { c.Recommend.DefaultTopN = 99 }, "RECOMMEND_DEFAULT_TOP_N"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if got := s.Addr(); got != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8501", got)
	}
}
