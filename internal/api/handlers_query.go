// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopperspectrum/internal/metrics"
	"github.com/tomtom215/shopperspectrum/internal/models"
)

// maxClassifyBody caps POST bodies; a classify request is three numbers.
const maxClassifyBody = 4 << 10

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, r)
		return
	}

	req, apiErr := parseRecommendationRequest(r, h.recommend.DefaultTopN)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if req.TopN > h.recommend.MaxTopN {
		respondValidation(w, r, fieldError("top_n", fmt.Sprintf("top_n must be at most %d", h.recommend.MaxTopN), req.TopN))
		return
	}

	state := h.current()
	if state == nil {
		respondModelNotReady(w, r)
		return
	}

	buildID := state.model.Info().BuildID
	key := cacheKey(buildID, req.Product, req.TopN)
	result, cached := h.results.Get(key)
	metrics.RecordRecommendationCache(cached)
	if !cached {
		result = state.model.GetRecommendations(req.Product, req.TopN)
		h.results.Add(key, result)
	}

	md := metadata(r, start)
	md.Cached = cached
	md.BuildID = buildID

	// An unknown product is an ordinary answer: found=false with no items.
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     result,
		Metadata: md,
	})
}

// ClassifyCustomer handles GET and POST /api/v1/segments/classify. GET reads
// recency, frequency and monetary from the query string, POST from a JSON body.
func (h *Handler) ClassifyCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		req    ClassifyRequest
		apiErr *models.APIError
	)
	switch r.Method {
	case http.MethodGet:
		req, apiErr = parseClassifyQuery(r)
	case http.MethodPost:
		req, apiErr = decodeClassifyBody(r)
	default:
		respondMethodNotAllowed(w, r)
		return
	}
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	state := h.current()
	if state == nil {
		respondModelNotReady(w, r)
		return
	}

	c := state.model.ClassifyCustomer(*req.Recency, *req.Frequency, *req.Monetary)

	md := metadata(r, start)
	md.BuildID = state.model.Info().BuildID
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     c,
		Metadata: md,
	})
}

func decodeClassifyBody(r *http.Request) (ClassifyRequest, *models.APIError) {
	var req ClassifyRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxClassifyBody+1))
	if err != nil {
		return req, fieldError("body", "failed to read request body", nil)
	}
	if len(body) > maxClassifyBody {
		return req, fieldError("body", "request body too large", len(body))
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fieldError("body", "request body must be a JSON object with recency, frequency and monetary", nil)
	}
	return req, validateRequest(&req)
}

// Segments handles GET /api/v1/segments.
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, r)
		return
	}

	state := h.current()
	if state == nil {
		respondModelNotReady(w, r)
		return
	}

	md := metadata(r, start)
	md.BuildID = state.model.Info().BuildID
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     state.model.Segments(),
		Metadata: md,
	})
}

// Products handles GET /api/v1/products.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, r)
		return
	}

	req, apiErr := parseProductsRequest(r)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	state := h.current()
	if state == nil {
		respondModelNotReady(w, r)
		return
	}

	products := state.model.SearchProducts(req.Prefix, req.Limit)
	md := metadata(r, start)
	md.BuildID = state.model.Info().BuildID
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.ProductList{
			Prefix:   req.Prefix,
			Products: products,
			Count:    len(products),
		},
		Metadata: md,
	})
}
