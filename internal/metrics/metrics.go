// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package metrics registers the Prometheus instruments for Shopper Spectrum:
// HTTP API traffic, model build stages, artifact persistence and the two
// query paths (recommendations and segment classification).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Build Metrics
	BuildStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_build_stage_duration_seconds",
			Help:    "Duration of model build stages in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"stage"}, // "load", "similarity", "segmentation", "persist", "restore"
	)

	BuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_builds_total",
			Help: "Model startup outcomes",
		},
		[]string{"origin"}, // "built", "loaded", "failed"
	)

	ModelProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_products",
			Help: "Number of products in the similarity table",
		},
	)

	ModelCustomers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_customers",
			Help: "Number of customers in the customer-product matrix",
		},
	)

	// Artifact Metrics
	ArtifactBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_size_bytes",
			Help: "Compressed size of each persisted artifact",
		},
		[]string{"artifact"},
	)

	ArtifactErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_errors_total",
			Help: "Artifact save and load failures",
		},
		[]string{"artifact", "operation"},
	)

	// Query Metrics
	RecommendationQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_queries_total",
			Help: "Recommendation queries by outcome",
		},
		[]string{"result"}, // "found", "not_found"
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Recommendation responses served from cache",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Recommendation responses computed on demand",
		},
	)

	SegmentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segment_classifications_total",
			Help: "Customer classifications by resulting segment",
		},
		[]string{"segment"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordBuildStage observes the duration of one build stage.
func RecordBuildStage(stage string, duration time.Duration) {
	BuildStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordModelShape publishes the size of the loaded model.
func RecordModelShape(customers, products int) {
	ModelCustomers.Set(float64(customers))
	ModelProducts.Set(float64(products))
}

// RecordRecommendation counts a recommendation query.
func RecordRecommendation(found bool) {
	if found {
		RecommendationQueries.WithLabelValues("found").Inc()
		return
	}
	RecommendationQueries.WithLabelValues("not_found").Inc()
}

// RecordRecommendationCache counts a cache lookup.
func RecordRecommendationCache(hit bool) {
	if hit {
		RecommendationCacheHits.Inc()
		return
	}
	RecommendationCacheMisses.Inc()
}
