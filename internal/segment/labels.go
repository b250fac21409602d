// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"fmt"
	"sort"
)

// Segment names.
const (
	Champions          = "Champions"
	LoyalCustomers     = "Loyal Customers"
	PotentialLoyalists = "Potential Loyalists"
	AtRisk             = "At Risk"
	Hibernating        = "Hibernating"
	Unknown            = "Unknown"
)

// SegmentOrder is the index order used by static labeling.
var SegmentOrder = []string{Champions, LoyalCustomers, PotentialLoyalists, AtRisk, Hibernating}

var insights = map[string]string{
	Champions:          "High-value customers who buy recently and frequently",
	LoyalCustomers:     "Frequent buyers but not recent",
	PotentialLoyalists: "Recent customers with good frequency",
	AtRisk:             "Spent big but haven't purchased lately",
	Hibernating:        "Last purchase long back and low frequency",
}

// Insight describes a segment. It is empty for Unknown.
func Insight(segment string) string {
	return insights[segment]
}

// Labeling selects how cluster indices are named.
type Labeling string

const (
	// LabelingRanked names clusters from their centroid RFM values.
	LabelingRanked Labeling = "ranked"
	// LabelingStatic names cluster i after SegmentOrder[i].
	LabelingStatic Labeling = "static"
)

// LabelMap maps cluster index to segment name.
type LabelMap map[int]string

// Label returns the segment for cluster, or Unknown.
func (m LabelMap) Label(cluster int) string {
	if name, ok := m[cluster]; ok {
		return name
	}
	return Unknown
}

// StaticLabels assigns SegmentOrder by cluster index. Indices beyond the
// five named segments stay unlabeled.
func StaticLabels(k int) LabelMap {
	m := make(LabelMap, k)
	for i := 0; i < k && i < len(SegmentOrder); i++ {
		m[i] = SegmentOrder[i]
	}
	return m
}

// RankedLabels names exactly five standardized centroids by business rule:
//   - Champions: highest value score (F + M − R)
//   - Hibernating: lowest value score among the rest
//   - Potential Loyalists: most recent (lowest R) among the remaining three
//   - Loyal Customers: most frequent (highest F) among the remaining two
//   - At Risk: the last one
//
// Ties go to the lower cluster index, so the mapping depends only on the
// centroid values, never on initialization order.
func RankedLabels(centroids []Point) (LabelMap, error) {
	if len(centroids) != len(SegmentOrder) {
		return nil, fmt.Errorf("ranked labeling needs %d clusters, got %d", len(SegmentOrder), len(centroids))
	}

	value := func(c int) float64 {
		p := centroids[c]
		return p[DimFrequency] + p[DimMonetary] - p[DimRecency]
	}

	remaining := []int{0, 1, 2, 3, 4}
	take := func(better func(a, b int) bool) int {
		sort.SliceStable(remaining, func(i, j int) bool { return better(remaining[i], remaining[j]) })
		c := remaining[0]
		remaining = remaining[1:]
		return c
	}
	byIndex := func() { sort.Ints(remaining) }

	m := make(LabelMap, len(SegmentOrder))
	m[take(func(a, b int) bool { return value(a) > value(b) })] = Champions
	byIndex()
	m[take(func(a, b int) bool { return value(a) < value(b) })] = Hibernating
	byIndex()
	m[take(func(a, b int) bool { return centroids[a][DimRecency] < centroids[b][DimRecency] })] = PotentialLoyalists
	byIndex()
	m[take(func(a, b int) bool { return centroids[a][DimFrequency] > centroids[b][DimFrequency] })] = LoyalCustomers
	m[remaining[0]] = AtRisk
	return m, nil
}

// AssignLabels labels km with the given strategy.
func AssignLabels(km *KMeans, labeling Labeling) (LabelMap, error) {
	switch labeling {
	case LabelingRanked:
		return RankedLabels(km.Centroids)
	case LabelingStatic, "":
		return StaticLabels(km.K()), nil
	default:
		return nil, fmt.Errorf("unknown labeling %q", labeling)
	}
}
