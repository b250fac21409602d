// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package models defines the JSON shapes returned by the HTTP API: the
// APIResponse envelope, its Metadata and APIError parts, and the payloads
// that have no home in a domain package (health, product lookup).
//
// Recommendation and classification payloads are the domain types
// spectrum.RecommendationResult and segment.Classification, serialized
// directly.
package models
