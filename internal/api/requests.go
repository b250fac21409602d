// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/shopperspectrum/internal/models"
)

// Product lookup limits.
const (
	defaultProductLimit = 20
	maxProductLimit     = 100
)

// RecommendationRequest is the query of GET /api/v1/recommendations.
// The upper bound of TopN comes from configuration and is checked by the
// handler.
type RecommendationRequest struct {
	Product string `json:"product" validate:"notblank,max=512"`
	TopN    int    `json:"top_n" validate:"min=1"`
}

// ClassifyRequest is the RFM triple of /api/v1/segments/classify. Negative
// values are accepted; NaN and infinities are not.
type ClassifyRequest struct {
	Recency   *float64 `json:"recency" validate:"required,finite"`
	Frequency *float64 `json:"frequency" validate:"required,finite"`
	Monetary  *float64 `json:"monetary" validate:"required,finite"`
}

// ProductsRequest is the query of GET /api/v1/products.
type ProductsRequest struct {
	Prefix string `json:"prefix" validate:"max=512"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, key string, def int) (int, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(key, key+" must be an integer", sanitizeLogValue(raw))
	}
	return v, nil
}

// floatParam parses an optional float query parameter; absent yields nil.
func floatParam(r *http.Request, key string) (*float64, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fieldError(key, key+" must be a number", sanitizeLogValue(raw))
	}
	return &v, nil
}

func parseRecommendationRequest(r *http.Request, defaultTopN int) (RecommendationRequest, *models.APIError) {
	req := RecommendationRequest{Product: r.URL.Query().Get("product")}
	topN, apiErr := intParam(r, "top_n", defaultTopN)
	if apiErr != nil {
		return req, apiErr
	}
	req.TopN = topN
	return req, validateRequest(&req)
}

func parseClassifyQuery(r *http.Request) (ClassifyRequest, *models.APIError) {
	var req ClassifyRequest
	var apiErr *models.APIError
	if req.Recency, apiErr = floatParam(r, "recency"); apiErr != nil {
		return req, apiErr
	}
	if req.Frequency, apiErr = floatParam(r, "frequency"); apiErr != nil {
		return req, apiErr
	}
	if req.Monetary, apiErr = floatParam(r, "monetary"); apiErr != nil {
		return req, apiErr
	}
	return req, validateRequest(&req)
}

func parseProductsRequest(r *http.Request) (ProductsRequest, *models.APIError) {
	req := ProductsRequest{Prefix: r.URL.Query().Get("prefix")}
	limit, apiErr := intParam(r, "limit", defaultProductLimit)
	if apiErr != nil {
		return req, apiErr
	}
	req.Limit = limit
	return req, validateRequest(&req)
}
