// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for every API response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"product": "WHITE MUG", "found": true, "items": [...]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"},
//	  "error": {"code": "VALIDATION_ERROR", "message": "product must not be blank"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata is attached to every response.
//
// Cached is true when a recommendation was served from the response cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	BuildID     string    `json:"build_id,omitempty"`
}

// APIError describes a failed request.
//
// Codes:
//   - VALIDATION_ERROR: invalid query parameters or body
//   - MODEL_NOT_READY: artifacts are still being loaded or built
//   - METHOD_NOT_ALLOWED, NOT_FOUND, INTERNAL_ERROR
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse reports server and model state.
type HealthResponse struct {
	Status     string       `json:"status"`
	ModelReady bool         `json:"model_ready"`
	Uptime     float64      `json:"uptime_seconds"`
	Version    string       `json:"version,omitempty"`
	Model      *ModelStatus `json:"model,omitempty"`
	Cache      CacheStatus  `json:"recommendation_cache"`
}

// CacheStatus reports the recommendation result cache counters.
type CacheStatus struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// ModelStatus summarizes the loaded model.
type ModelStatus struct {
	BuildID   string    `json:"build_id"`
	BuiltAt   time.Time `json:"built_at"`
	Origin    string    `json:"origin,omitempty"`
	Customers int       `json:"customers"`
	Products  int       `json:"products"`
	Segments  int       `json:"segments"`
}

// ProductList is the payload of the product lookup endpoint.
type ProductList struct {
	Prefix   string   `json:"prefix"`
	Products []string `json:"products"`
	Count    int      `json:"count"`
}
