// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package api binds the Shopper Spectrum query surface to HTTP using the chi
router.

Endpoints:

	GET      /api/v1/recommendations?product=&top_n=   similar products
	GET|POST /api/v1/segments/classify                 segment for an RFM triple
	GET      /api/v1/segments                          fitted segment catalogue
	GET      /api/v1/products?prefix=&limit=           product name lookup
	GET      /api/v1/health                            server and model status
	GET      /metrics                                  Prometheus exposition

Every JSON response uses the models.APIResponse envelope. An unknown product
is a successful response carrying {product, found:false, items:[]}. Error codes:

	VALIDATION_ERROR   400  bad query parameters or body
	MODEL_NOT_READY    503  no model has been installed yet
	METHOD_NOT_ALLOWED 405

The Handler holds the current spectrum.Model behind an atomic pointer, so the
model reload service can swap builds without blocking requests. Recommendation
results are cached in an LRU keyed by build, product and count.

Middleware order (global): request ID, real IP, panic recovery, CORS, rate
limiting, Prometheus metrics, gzip compression.
*/
package api
