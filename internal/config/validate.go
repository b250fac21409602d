// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package config

import (
	"fmt"
	"strings"
)

// rankedLabelCount is the number of business segments the ranked labeler assigns.
const rankedLabelCount = 5

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	if len(c.Data.DateLayouts) == 0 {
		return fmt.Errorf("at least one InvoiceDate layout is required")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if strings.TrimSpace(c.Artifacts.Dir) == "" {
		return fmt.Errorf("ARTIFACTS_DIR is required")
	}
	if c.Artifacts.ReloadInterval < 0 {
		return fmt.Errorf("ARTIFACTS_RELOAD must not be negative, got %v", c.Artifacts.ReloadInterval)
	}
	switch c.Artifacts.Backend {
	case BackendFile, BackendBadger:
		return nil
	default:
		return fmt.Errorf("ARTIFACTS_BACKEND must be %q or %q, got %q", BackendFile, BackendBadger, c.Artifacts.Backend)
	}
}

func (c *Config) validateSegmentation() error {
	s := c.Segmentation
	if s.Clusters < 1 {
		return fmt.Errorf("SEGMENT_CLUSTERS must be at least 1, got %d", s.Clusters)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("SEGMENT_MAX_ITERATIONS must be at least 1, got %d", s.MaxIterations)
	}
	if s.NInit < 1 {
		return fmt.Errorf("SEGMENT_N_INIT must be at least 1, got %d", s.NInit)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("SEGMENT_TOLERANCE must not be negative, got %g", s.Tolerance)
	}
	switch s.Labeling {
	case LabelingRanked:
		if s.Clusters != rankedLabelCount {
			return fmt.Errorf("ranked labeling requires exactly %d clusters, got %d", rankedLabelCount, s.Clusters)
		}
	case LabelingStatic:
	default:
		return fmt.Errorf("SEGMENT_LABELING must be %q or %q, got %q", LabelingRanked, LabelingStatic, s.Labeling)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxTopN < 1 {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N must be at least 1, got %d", r.MaxTopN)
	}
	if r.DefaultTopN < 1 || r.DefaultTopN > r.MaxTopN {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be between 1 and %d, got %d", r.MaxTopN, r.DefaultTopN)
	}
	if r.CacheSize < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must not be negative, got %d", r.CacheSize)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs < 1 || c.Security.RateLimitWindow <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
