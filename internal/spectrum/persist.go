// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package spectrum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/artifacts"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/segment"
	"github.com/tomtom215/shopperspectrum/internal/similarity"
)

// ErrMixedBuilds is returned by Load when the stored artifacts were not all
// written by the same build.
var ErrMixedBuilds = errors.New("artifacts come from different builds")

// BuildOrigin tells how LoadOrBuild obtained its Model.
type BuildOrigin string

const (
	// OriginLoaded means all artifacts were read from the store.
	OriginLoaded BuildOrigin = "loaded"
	// OriginBuilt means the model was built from the transaction log.
	OriginBuilt BuildOrigin = "built"
	// OriginReloaded means a running server picked up a newer stored build.
	OriginReloaded BuildOrigin = "reloaded"
)

// Save writes the five artifacts of m in one batch.
func Save(ctx context.Context, store *artifacts.Store, m *Model) error {
	start := time.Now()
	meta := artifacts.Metadata{BuildID: m.info.BuildID, BuiltAt: m.info.BuiltAt}
	err := store.SaveAll(ctx, meta,
		artifacts.Item{Name: artifacts.CustomerProductMatrix, Value: m.matrix},
		artifacts.Item{Name: artifacts.ProductSimilarity, Value: m.table},
		artifacts.Item{Name: artifacts.ClusterModel, Value: m.segments.Clusters},
		artifacts.Item{Name: artifacts.RFMScaler, Value: m.segments.Scaler},
		artifacts.Item{Name: artifacts.SegmentLabels, Value: m.segments.Labels},
	)
	if err != nil {
		return fmt.Errorf("save model %s: %w", m.info.BuildID, err)
	}
	metrics.RecordBuildStage("save", time.Since(start))
	logging.Ctx(ctx).Info().
		Str("component", "artifacts").
		Str("build_id", m.info.BuildID).
		Dur("duration", time.Since(start)).
		Msg("Artifacts saved")
	return nil
}

// Load reads the five artifacts and assembles a Model.
func Load(ctx context.Context, store *artifacts.Store) (*Model, error) {
	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("component", "artifacts").Logger()

	var (
		matrix similarity.Matrix
		table  similarity.Table
		km     segment.KMeans
		scaler segment.Scaler
		labels segment.LabelMap
	)
	targets := []struct {
		name   string
		target any
	}{
		{artifacts.CustomerProductMatrix, &matrix},
		{artifacts.ProductSimilarity, &table},
		{artifacts.ClusterModel, &km},
		{artifacts.RFMScaler, &scaler},
		{artifacts.SegmentLabels, &labels},
	}

	var first *artifacts.Metadata
	for _, t := range targets {
		meta, err := store.Load(ctx, t.name, t.target)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", t.name, err)
		}
		if first == nil {
			first = meta
			continue
		}
		if meta.BuildID != first.BuildID {
			return nil, fmt.Errorf("%w: %s is from build %q, %s from %q",
				ErrMixedBuilds, t.name, meta.BuildID, targets[0].name, first.BuildID)
		}
	}

	_, products := matrix.Dims()
	if table.Len() != products {
		return nil, fmt.Errorf("similarity table has %d products, matrix has %d", table.Len(), products)
	}

	seg, err := segment.NewModel(scaler, &km, labels)
	if err != nil {
		return nil, fmt.Errorf("assemble segment model: %w", err)
	}

	m := newModel(&matrix, &table, seg, first.BuildID, first.BuiltAt)
	metrics.RecordModelShape(m.info.Customers, m.info.Products)
	metrics.RecordBuildStage("load_artifacts", time.Since(start))

	logger.Info().
		Str("build_id", m.info.BuildID).
		Time("built_at", m.info.BuiltAt).
		Int("customers", m.info.Customers).
		Int("products", m.info.Products).
		Dur("duration", time.Since(start)).
		Msg("Artifacts loaded")
	return m, nil
}

// LoadOrBuild returns the stored model when every artifact is present and
// opts.Rebuild is false. Otherwise, or when the stored artifacts cannot be
// read or come from different builds, it builds from opts.DataPath and saves
// the result. A build failure writes nothing.
//
//nolint:gocritic // Options passed by value keeps call sites simple
func LoadOrBuild(ctx context.Context, store *artifacts.Store, opts Options) (*Model, BuildOrigin, error) {
	logger := logging.Ctx(ctx).With().Str("component", "spectrum").Logger()

	if !opts.Rebuild {
		missing, err := store.Missing(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("check artifacts: %w", err)
		}
		if len(missing) == 0 {
			m, err := Load(ctx, store)
			if err == nil {
				metrics.BuildsTotal.WithLabelValues(string(OriginLoaded)).Inc()
				return m, OriginLoaded, nil
			}
			logger.Warn().Err(err).Msg("Stored artifacts unreadable, rebuilding")
		} else {
			logger.Info().Strs("missing", missing).Msg("Artifacts missing, building")
		}
	}

	m, err := BuildFromFile(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	if err := Save(ctx, store, m); err != nil {
		return nil, "", err
	}
	metrics.BuildsTotal.WithLabelValues(string(OriginBuilt)).Inc()
	return m, OriginBuilt, nil
}

// Source reads models from a Store for callers that poll for new builds.
type Source struct {
	store *artifacts.Store
}

// NewSource wraps store.
func NewSource(store *artifacts.Store) *Source {
	return &Source{store: store}
}

// LatestBuildID returns the build that wrote the stored cluster model, or ""
// while the store does not hold all five artifacts.
func (s *Source) LatestBuildID(ctx context.Context) (string, error) {
	complete, err := s.store.Complete(ctx)
	if err != nil {
		return "", err
	}
	if !complete {
		return "", nil
	}
	meta, err := s.store.Stat(ctx, artifacts.ClusterModel)
	if err != nil {
		return "", err
	}
	return meta.BuildID, nil
}

// Load reads the stored model.
func (s *Source) Load(ctx context.Context) (*Model, error) {
	return Load(ctx, s.store)
}
