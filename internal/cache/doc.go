// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

/*
Package cache provides the in-memory lookup structures used on the query
path.

LRU is a generic least-recently-used cache with TTL expiration. The API layer
keeps recent recommendation responses in one, keyed by build, product and
count, so popular products skip the ranking step:

	recs := cache.NewLRU[spectrum.RecommendationResult](1024, 10*time.Minute)
	if res, ok := recs.Get(key); ok {
	    return res
	}

Trie is a case-insensitive prefix index over product names, backing the
product lookup endpoint:

	names := cache.NewTrieFrom(table.Products())
	names.Complete("white hang", 20)

Both are safe for concurrent use.
*/
package cache
