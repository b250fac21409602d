// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator checks the request structs built by the
// HTTP handlers and the CLI before they reach the model. Failures are
// converted to the VALIDATION_ERROR format used by API responses.
//
// # Custom Validators
//
//   - notblank: string must contain a non-whitespace character
//   - finite: float must be neither NaN nor infinite
//
// Field names in messages come from the json tag when present, so errors
// name the parameter the client actually sent.
//
// # Quick Start
//
//	type RecommendationRequest struct {
//	    Product string `json:"product" validate:"notblank,max=512"`
//	    TopN    int    `json:"top_n" validate:"min=1,max=50"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
