// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package spectrum assembles the product similarity table and the customer
segment model into one immutable Model and exposes the two queries served by
the CLI and the HTTP API.

A Model is built from a transaction log (Build, BuildFromFile) or loaded from
the artifact store (Load). LoadOrBuild combines the two: when all five
artifacts are present the build step is skipped, otherwise the model is built
and persisted. A Model never changes after construction, so it can be shared
by concurrent request handlers without locking.

Usage:

	store, _ := artifacts.Open(cfg.Artifacts)
	model, origin, err := spectrum.LoadOrBuild(ctx, store, spectrum.OptionsFromConfig(cfg))
	if err != nil {
	    return err
	}
	res := model.GetRecommendations("WHITE HANGING HEART T-LIGHT HOLDER", 5)
*/
package spectrum

import (
	"time"

	"github.com/tomtom215/shopperspectrum/internal/cache"
	"github.com/tomtom215/shopperspectrum/internal/segment"
	"github.com/tomtom215/shopperspectrum/internal/similarity"
)

// DefaultTopN is used when a recommendation query does not name a count.
const DefaultTopN = 5

// BuildInfo identifies the build that produced a Model.
type BuildInfo struct {
	BuildID   string    `json:"build_id"`
	BuiltAt   time.Time `json:"built_at"`
	Customers int       `json:"customers"`
	Products  int       `json:"products"`
	Segments  int       `json:"segments"`
}

// Model holds the five artifacts behind the query surface.
type Model struct {
	matrix   *similarity.Matrix
	table    *similarity.Table
	segments *segment.Model
	names    *cache.Trie
	info     BuildInfo
}

func newModel(matrix *similarity.Matrix, table *similarity.Table, segments *segment.Model, buildID string, builtAt time.Time) *Model {
	customers, products := matrix.Dims()
	return &Model{
		matrix:   matrix,
		table:    table,
		segments: segments,
		names:    cache.NewTrieFrom(table.Products()),
		info: BuildInfo{
			BuildID:   buildID,
			BuiltAt:   builtAt,
			Customers: customers,
			Products:  products,
			Segments:  segments.Clusters.K(),
		},
	}
}

// Info describes the build.
func (m *Model) Info() BuildInfo {
	return m.info
}

// Matrix returns the customer-product matrix.
func (m *Model) Matrix() *similarity.Matrix {
	return m.matrix
}

// Similarity returns the product similarity table.
func (m *Model) Similarity() *similarity.Table {
	return m.table
}

// Segmentation returns the fitted segment model.
func (m *Model) Segmentation() *segment.Model {
	return m.segments
}
