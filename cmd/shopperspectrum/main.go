// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Command shopperspectrum builds product recommendations and RFM customer
// segments from a retail transaction log and serves them.
//
// Usage:
//
//	shopperspectrum build [--rebuild]
//	shopperspectrum serve
//	shopperspectrum recommend <product> [--top-n N]
//	shopperspectrum classify --recency R --frequency F --monetary M
//	shopperspectrum segments
//
// Every command reads the layered configuration (defaults, config.yaml,
// environment). --data, --artifacts and --backend override the matching
// settings. Query commands build and persist the artifacts first when any
// of the five is missing.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
