// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package artifacts persists the five build outputs as independent blobs:
// the customer-product matrix, the product similarity table, the cluster
// model, the RFM scaler and the segment label map.
//
// # Storage Format
//
// Each artifact is gob-encoded, checksummed with SHA-256 and gzip-compressed
// into an envelope that carries its Metadata. Load verifies the checksum
// before decoding.
//
// # Backends
//
// FileBackend writes one {name}.gob.gz file per artifact; BadgerBackend keeps
// them as keys in a BadgerDB directory. SaveAll writes a set of artifacts in
// one batch: a single transaction for badger, write-then-rename for files.
//
// The presence of all five artifacts (Store.Complete) is the signal that the
// build step may be skipped.
package artifacts
