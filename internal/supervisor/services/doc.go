// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package services provides suture.Service wrappers for the serve command.

HTTPServerService adapts the blocking ListenAndServe/Shutdown pair of
*http.Server to suture's context-aware Serve.

ModelReloadService polls the artifact store and swaps in a newer build when
another process (usually `shopperspectrum build --rebuild`) has written one.

Return values follow suture conventions:

	nil        -> service stopped cleanly
	error      -> service crashed, the supervisor restarts it
	ctx.Err()  -> shutdown requested
*/
package services
