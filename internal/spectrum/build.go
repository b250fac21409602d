// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package spectrum

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/retail"
	"github.com/tomtom215/shopperspectrum/internal/segment"
	"github.com/tomtom215/shopperspectrum/internal/similarity"
)

// Options control how a Model is built.
type Options struct {
	// DataPath is the transaction log read by BuildFromFile.
	DataPath    string
	DateLayouts []string

	Segmentation segment.Config

	// Rebuild makes LoadOrBuild ignore stored artifacts.
	Rebuild bool
}

// DefaultOptions returns the defaults for a log at path.
func DefaultOptions(path string) Options {
	return Options{
		DataPath:     path,
		DateLayouts:  retail.DefaultDateLayouts,
		Segmentation: segment.DefaultConfig(),
	}
}

// OptionsFromConfig maps the application configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DataPath:    cfg.Data.Path,
		DateLayouts: cfg.Data.DateLayouts,
		Segmentation: segment.Config{
			KMeans: segment.KMeansConfig{
				K:             cfg.Segmentation.Clusters,
				MaxIterations: cfg.Segmentation.MaxIterations,
				Tolerance:     cfg.Segmentation.Tolerance,
				NInit:         cfg.Segmentation.NInit,
				Seed:          cfg.Segmentation.Seed,
			},
			Labeling: segment.Labeling(cfg.Segmentation.Labeling),
		},
		Rebuild: cfg.Artifacts.Rebuild,
	}
}

// Build runs both builders over txns.
//
//nolint:gocritic // Options passed by value keeps call sites simple
func Build(ctx context.Context, txns []retail.Transaction, opts Options) (*Model, error) {
	logger := logging.Ctx(ctx).With().Str("component", "spectrum").Logger()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart := time.Now()
	matrix, table := similarity.Build(txns)
	metrics.RecordBuildStage("similarity", time.Since(stageStart))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	seg, err := segment.Build(txns, opts.Segmentation)
	if err != nil {
		return nil, fmt.Errorf("build segments: %w", err)
	}
	metrics.RecordBuildStage("segmentation", time.Since(stageStart))

	m := newModel(matrix, table, seg.Model, uuid.New().String(), time.Now().UTC())
	metrics.RecordModelShape(m.info.Customers, m.info.Products)

	logger.Info().
		Str("build_id", m.info.BuildID).
		Int("transactions", len(txns)).
		Int("customers", m.info.Customers).
		Int("products", m.info.Products).
		Dur("duration", time.Since(start)).
		Msg("Model built")
	return m, nil
}

// BuildFromFile loads opts.DataPath and builds a Model from it. A
// retail.DataFormatError aborts the build.
//
//nolint:gocritic // Options passed by value keeps call sites simple
func BuildFromFile(ctx context.Context, opts Options) (*Model, error) {
	stageStart := time.Now()
	var loadOpts []retail.Option
	if len(opts.DateLayouts) > 0 {
		loadOpts = append(loadOpts, retail.WithDateLayouts(opts.DateLayouts...))
	}
	txns, _, err := retail.Load(ctx, opts.DataPath, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	metrics.RecordBuildStage("load", time.Since(stageStart))
	return Build(ctx, txns, opts)
}
