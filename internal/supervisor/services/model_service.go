// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/spectrum"
)

// ModelSource reads builds from the artifact store. *spectrum.Source
// satisfies it.
type ModelSource interface {
	LatestBuildID(ctx context.Context) (string, error)
	Load(ctx context.Context) (*spectrum.Model, error)
}

// ModelSink receives reloaded models. The API handler satisfies it.
type ModelSink interface {
	CurrentBuildID() string
	SetModel(m *spectrum.Model, origin spectrum.BuildOrigin)
}

var _ ModelSource = (*spectrum.Source)(nil)

// ModelReloadService swaps in newer stored builds while the server runs.
type ModelReloadService struct {
	source   ModelSource
	sink     ModelSink
	interval time.Duration
	logger   zerolog.Logger
	name     string

	reloads  atomic.Int64
	failures atomic.Int64
}

// NewModelReloadService polls source every interval. A non-positive interval
// disables polling; the service then idles until shutdown.
func NewModelReloadService(source ModelSource, sink ModelSink, interval time.Duration) *ModelReloadService {
	return &ModelReloadService{
		source:   source,
		sink:     sink,
		interval: interval,
		logger:   logging.WithComponent("model-reload"),
		name:     "model-reload",
	}
}

// Serve implements suture.Service. Failed checks are logged and retried on
// the next tick, so a rebuild in progress never crashes the service.
func (s *ModelReloadService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("Model reloading disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().Dur("interval", s.interval).Msg("Model reload service running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Model reload service stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Check(ctx); err != nil && ctx.Err() == nil {
				s.failures.Add(1)
				s.logger.Warn().Err(err).Msg("Model reload check failed, will retry")
			}
		}
	}
}

// Check performs one poll and reports whether a new model was installed.
func (s *ModelReloadService) Check(ctx context.Context) (bool, error) {
	latest, err := s.source.LatestBuildID(ctx)
	if err != nil {
		return false, fmt.Errorf("read latest build id: %w", err)
	}
	current := s.sink.CurrentBuildID()
	if latest == "" || latest == current {
		return false, nil
	}

	m, err := s.source.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load build %s: %w", latest, err)
	}

	s.sink.SetModel(m, spectrum.OriginReloaded)
	s.reloads.Add(1)
	metrics.BuildsTotal.WithLabelValues(string(spectrum.OriginReloaded)).Inc()
	s.logger.Info().
		Str("previous_build_id", current).
		Str("build_id", latest).
		Msg("Model reloaded")
	return true, nil
}

// Reloads returns how many models this service has installed.
func (s *ModelReloadService) Reloads() int64 {
	return s.reloads.Load()
}

// Failures returns how many polls failed.
func (s *ModelReloadService) Failures() int64 {
	return s.failures.Load()
}

func (s *ModelReloadService) String() string {
	return s.name
}
