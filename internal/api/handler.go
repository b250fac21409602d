// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/cache"
	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/spectrum"
)

// modelState is swapped as a unit so a request never sees a model paired
// with another build's origin.
type modelState struct {
	model       *spectrum.Model
	origin      spectrum.BuildOrigin
	installedAt time.Time
}

// Handler serves the query endpoints.
type Handler struct {
	state     atomic.Pointer[modelState]
	results   *cache.LRU[spectrum.RecommendationResult]
	recommend config.RecommendConfig
	startTime time.Time
	version   string
}

// NewHandler creates a Handler with no model installed. Requests that need
// a model answer MODEL_NOT_READY until SetModel is called.
//
//nolint:gocritic // config passed by value, it is copied once at startup
func NewHandler(cfg config.RecommendConfig, version string) *Handler {
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = spectrum.DefaultTopN
	}
	if cfg.MaxTopN < cfg.DefaultTopN {
		cfg.MaxTopN = cfg.DefaultTopN
	}
	return &Handler{
		results:   cache.NewLRU[spectrum.RecommendationResult](cfg.CacheSize, cfg.CacheTTL),
		recommend: cfg,
		startTime: time.Now(),
		version:   version,
	}
}

// SetModel installs m for subsequent requests and drops cached results.
func (h *Handler) SetModel(m *spectrum.Model, origin spectrum.BuildOrigin) {
	h.state.Store(&modelState{model: m, origin: origin, installedAt: time.Now()})
	h.results.Clear()

	info := m.Info()
	logging.Info().
		Str("component", "api").
		Str("build_id", info.BuildID).
		Str("origin", string(origin)).
		Int("products", info.Products).
		Int("customers", info.Customers).
		Msg("Model installed")
}

// CurrentBuildID returns the build ID of the installed model, or "".
func (h *Handler) CurrentBuildID() string {
	s := h.state.Load()
	if s == nil || s.model == nil {
		return ""
	}
	return s.model.Info().BuildID
}

func (h *Handler) current() *modelState {
	s := h.state.Load()
	if s == nil || s.model == nil {
		return nil
	}
	return s
}

// cacheKey includes the build ID so a result computed against a replaced
// model can never be served after the swap.
func cacheKey(buildID, product string, topN int) string {
	return buildID + "\x00" + product + "\x00" + strconv.Itoa(topN)
}
