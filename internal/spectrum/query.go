// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package spectrum

import (
	"strings"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/segment"
	"github.com/tomtom215/shopperspectrum/internal/similarity"
)

// RecommendationResult is the answer to GetRecommendations. An unknown
// product is reported with Found=false and no items.
type RecommendationResult struct {
	Product string                      `json:"product"`
	Found   bool                        `json:"found"`
	Items   []similarity.Recommendation `json:"items"`
}

// GetRecommendations returns up to topN products most similar to product.
// topN <= 0 means DefaultTopN.
func (m *Model) GetRecommendations(product string, topN int) RecommendationResult {
	if topN <= 0 {
		topN = DefaultTopN
	}
	items, found := m.table.Recommend(product, topN)
	if items == nil {
		items = []similarity.Recommendation{}
	}
	metrics.RecordRecommendation(found)

	logging.Debug().
		Str("product", product).
		Int("top_n", topN).
		Bool("found", found).
		Int("items", len(items)).
		Msg("Recommendation query")

	return RecommendationResult{Product: product, Found: found, Items: items}
}

// ClassifyCustomer assigns a raw (recency, frequency, monetary) triple to a
// segment. Values are not validated.
func (m *Model) ClassifyCustomer(recency, frequency, monetary float64) segment.Classification {
	c := m.segments.Classify(recency, frequency, monetary)
	metrics.SegmentClassifications.WithLabelValues(c.Segment).Inc()
	return c
}

// Segments lists the fitted segments.
func (m *Model) Segments() []segment.SegmentInfo {
	return m.segments.Segments()
}

// SearchProducts lists up to limit known product names starting with
// prefix, ignoring case and surrounding space. The result is never nil.
func (m *Model) SearchProducts(prefix string, limit int) []string {
	return m.names.Complete(strings.TrimSpace(prefix), limit)
}
