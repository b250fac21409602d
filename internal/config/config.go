// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package config provides layered configuration for Shopper Spectrum.
//
// Configuration is resolved in three layers, later layers winning:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/shopperspectrum/config.yaml)
//  3. Environment variables (DATA_PATH, ARTIFACTS_DIR, HTTP_PORT, LOG_LEVEL, ...)
//
// A loaded Config is validated once and then treated as read-only.
package config

import (
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Data         DataConfig         `koanf:"data"`
	Artifacts    ArtifactsConfig    `koanf:"artifacts"`
	Segmentation SegmentationConfig `koanf:"segmentation"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	Server       ServerConfig       `koanf:"server"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// DataConfig locates the transaction log.
type DataConfig struct {
	// Path is a CSV or Parquet transaction log.
	Path string `koanf:"path"`

	// DateLayouts are tried in order when parsing InvoiceDate.
	DateLayouts []string `koanf:"date_layouts"`
}

// ArtifactsConfig controls where built artifacts are persisted.
type ArtifactsConfig struct {
	// Dir holds one file per artifact (file backend) or the badger directory.
	Dir string `koanf:"dir"`

	// Backend is "file" or "badger".
	Backend string `koanf:"backend"`

	// Rebuild forces a build even when all artifacts are present.
	Rebuild bool `koanf:"rebuild"`

	// ReloadInterval is how often a running server checks the store for a
	// newer build. Zero disables reloading.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// SegmentationConfig controls the RFM clustering step.
type SegmentationConfig struct {
	Clusters      int     `koanf:"clusters"`
	MaxIterations int     `koanf:"max_iterations"`
	Tolerance     float64 `koanf:"tolerance"`
	NInit         int     `koanf:"n_init"`
	Seed          int64   `koanf:"seed"`

	// Labeling is "static" (labels follow cluster index order, the default)
	// or "ranked" (labels follow centroid RFM values).
	Labeling string `koanf:"labeling"`
}

// RecommendConfig controls the recommendation query surface.
type RecommendConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	CacheSize   int           `koanf:"cache_size"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and rate-limit settings for the HTTP API.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for the file/env layers.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load resolves configuration from defaults, the first config file found and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf("")
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
