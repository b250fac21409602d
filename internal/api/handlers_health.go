// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/models"
)

// Health handles GET /api/v1/health. It answers 200 with status "healthy"
// once a model is installed and 503 with status "starting" before that.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, r)
		return
	}

	health := models.HealthResponse{
		Status:  "starting",
		Uptime:  time.Since(h.startTime).Seconds(),
		Version: h.version,
	}
	status := http.StatusServiceUnavailable
	health.Cache.Hits, health.Cache.Misses, health.Cache.Size = h.results.Stats()

	if state := h.current(); state != nil {
		info := state.model.Info()
		health.Status = "healthy"
		health.ModelReady = true
		health.Model = &models.ModelStatus{
			BuildID:   info.BuildID,
			BuiltAt:   info.BuiltAt,
			Origin:    string(state.origin),
			Customers: info.Customers,
			Products:  info.Products,
			Segments:  info.Segments,
		}
		status = http.StatusOK
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: metadata(r, time.Time{}),
	})
}
