// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"fmt"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/retail"
)

// Config controls Build.
type Config struct {
	KMeans   KMeansConfig
	Labeling Labeling
}

// DefaultConfig returns five clusters with seed 42, labeled in index order.
func DefaultConfig() Config {
	return Config{KMeans: DefaultKMeansConfig(), Labeling: LabelingStatic}
}

// Model is the read-only segment classifier.
type Model struct {
	Scaler   Scaler
	Clusters *KMeans
	Labels   LabelMap
}

// NewModel assembles a model from its persisted parts.
func NewModel(scaler Scaler, clusters *KMeans, labels LabelMap) (*Model, error) {
	if clusters == nil || len(clusters.Centroids) == 0 {
		return nil, fmt.Errorf("cluster model has no centroids")
	}
	return &Model{Scaler: scaler, Clusters: clusters, Labels: labels}, nil
}

// Classification is the result of classifying one RFM triple.
type Classification struct {
	Segment string `json:"segment"`
	Cluster int    `json:"cluster"`
	Insight string `json:"insight,omitempty"`
}

// Classify standardizes (recency, frequency, monetary) with the stored scaler
// and returns the label of the nearest centroid. Inputs are not range
// checked; negative values classify like any other point.
func (m *Model) Classify(recency, frequency, monetary float64) Classification {
	p := m.Scaler.Transform(Point{recency, frequency, monetary})
	c := m.Clusters.Predict(p)
	label := m.Labels.Label(c)
	return Classification{Segment: label, Cluster: c, Insight: Insight(label)}
}

// SegmentInfo describes one fitted cluster.
type SegmentInfo struct {
	Cluster int    `json:"cluster"`
	Segment string `json:"segment"`
	Insight string `json:"insight,omitempty"`
	// Centroid is expressed in raw RFM units.
	Recency   float64 `json:"recency"`
	Frequency float64 `json:"frequency"`
	Monetary  float64 `json:"monetary"`
	Customers int     `json:"customers"`
}

// Segments lists the fitted clusters in index order.
func (m *Model) Segments() []SegmentInfo {
	out := make([]SegmentInfo, len(m.Clusters.Centroids))
	for c, centroid := range m.Clusters.Centroids {
		raw := m.Scaler.Inverse(centroid)
		label := m.Labels.Label(c)
		out[c] = SegmentInfo{
			Cluster:   c,
			Segment:   label,
			Insight:   Insight(label),
			Recency:   raw[DimRecency],
			Frequency: raw[DimFrequency],
			Monetary:  raw[DimMonetary],
		}
		if c < len(m.Clusters.Sizes) {
			out[c].Customers = m.Clusters.Sizes[c]
		}
	}
	return out
}

// Result is the full output of Build.
type Result struct {
	RFM         []RFM
	Assignments []int
	Model       *Model
}

// Build computes RFM per customer, fits the scaler and k-means, and labels
// the clusters.
func Build(txns []retail.Transaction, cfg Config) (*Result, error) {
	logger := logging.WithComponent("segment")
	start := time.Now()

	rows := ComputeRFM(txns)
	scaler := FitScaler(rows)

	points := make([]Point, len(rows))
	for i := range rows {
		points[i] = scaler.Transform(rows[i].Point())
	}

	km, assignments, err := FitKMeans(points, cfg.KMeans)
	if err != nil {
		return nil, fmt.Errorf("fit clusters: %w", err)
	}

	labels, err := AssignLabels(km, cfg.Labeling)
	if err != nil {
		return nil, fmt.Errorf("label clusters: %w", err)
	}

	logger.Info().
		Int("customers", len(rows)).
		Int("clusters", km.K()).
		Int("iterations", km.Iterations).
		Float64("inertia", km.Inertia).
		Str("labeling", string(cfg.Labeling)).
		Dur("duration", time.Since(start)).
		Msg("Customer segments built")

	return &Result{
		RFM:         rows,
		Assignments: assignments,
		Model:       &Model{Scaler: scaler, Clusters: km, Labels: labels},
	}, nil
}
