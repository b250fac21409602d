// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shopperspectrum/config.yaml",
	"/etc/shopperspectrum/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// Labeling strategies.
const (
	LabelingRanked = "ranked"
	LabelingStatic = "static"
)

// Artifact backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: "online_retail.csv",
			DateLayouts: []string{
				"1/2/2006 15:04",
				"2006-01-02 15:04:05",
				time.RFC3339,
				"2006-01-02",
			},
		},
		Artifacts: ArtifactsConfig{
			Dir:            "artifacts",
			Backend:        BackendFile,
			Rebuild:        false,
			ReloadInterval: time.Minute,
		},
		Segmentation: SegmentationConfig{
			Clusters:      5,
			MaxIterations: 300,
			Tolerance:     1e-4,
			NInit:         10,
			Seed:          42,
			Labeling:      LabelingStatic,
		},
		Recommend: RecommendConfig{
			DefaultTopN: 5,
			MaxTopN:     50,
			CacheSize:   1024,
			CacheTTL:    10 * time.Minute,
		},
		Server: ServerConfig{
			Port:    8501,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults
//  2. Config file: configPath when non-empty, otherwise the first file found
//     via CONFIG_PATH or DefaultConfigPaths
//  3. Environment variables
func LoadWithKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"data.date_layouts",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"data_path":         "data.path",
	"data_date_layouts": "data.date_layouts",

	"artifacts_dir":     "artifacts.dir",
	"artifacts_backend": "artifacts.backend",
	"artifacts_rebuild": "artifacts.rebuild",
	"artifacts_reload":  "artifacts.reload_interval",

	"segment_clusters":       "segmentation.clusters",
	"segment_max_iterations": "segmentation.max_iterations",
	"segment_tolerance":      "segmentation.tolerance",
	"segment_n_init":         "segmentation.n_init",
	"segment_seed":           "segmentation.seed",
	"segment_labeling":       "segmentation.labeling",

	"recommend_default_top_n": "recommend.default_top_n",
	"recommend_max_top_n":     "recommend.max_top_n",
	"recommend_cache_size":    "recommend.cache_size",
	"recommend_cache_ttl":     "recommend.cache_ttl",

	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
