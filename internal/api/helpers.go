// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/middleware"
	"github.com/tomtom215/shopperspectrum/internal/models"
	"github.com/tomtom215/shopperspectrum/internal/validation"
)

// Error codes beyond validation.CodeValidationError.
const (
	CodeModelNotReady    = "MODEL_NOT_READY"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
)

// sanitizeLogValue escapes control characters so request input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes response with status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes an error envelope. err is logged, never returned to
// the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: metadata(r, time.Time{}),
		Error:    apiErr,
	})
}

func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *models.APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr, nil)
}

func respondMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{
		Code:    CodeMethodNotAllowed,
		Message: "Method not allowed",
	}, nil)
}

func respondModelNotReady(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
		Code:    CodeModelNotReady,
		Message: "Model is not loaded yet",
	}, nil)
}

// metadata builds response metadata. A zero start omits the query time.
func metadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: middleware.GetRequestID(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// validateRequest runs struct validation and converts failures to the API
// error format.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// fieldError is a validation error for a single field that struct tags
// cannot express.
func fieldError(field, message string, value interface{}) *models.APIError {
	return &models.APIError{
		Code:    validation.CodeValidationError,
		Message: message,
		Details: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}
