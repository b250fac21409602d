// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package middleware provides HTTP middleware for the query API.

  - RequestID: assigns X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency, and in-flight gauge
  - Compression: gzip for clients that accept it

All three use the http.HandlerFunc wrapper shape; the api package adapts them
to chi's func(http.Handler) http.Handler:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

Metrics are labeled with the chi route pattern when one is available, so
query strings and path parameters do not create new series.
*/
package middleware
