// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package similarity

import (
	"sort"
)

// Recommendation is one similar product and its cosine score.
type Recommendation struct {
	Product string  `json:"name"`
	Score   float64 `json:"score"`
}

// Recommend returns up to topN products most similar to product, highest
// score first. Equal scores keep column order. The queried product is
// excluded by identity, so another product with a perfect score is still
// returned. found is false when product is not in the table; that is a
// normal result, not an error.
func (t *Table) Recommend(product string, topN int) (items []Recommendation, found bool) {
	idx, ok := t.index[product]
	if !ok {
		return nil, false
	}
	if topN <= 0 {
		return []Recommendation{}, true
	}

	candidates := make([]int, 0, len(t.products)-1)
	for j := range t.products {
		if j != idx {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return t.scores.At(idx, candidates[a]) > t.scores.At(idx, candidates[b])
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	items = make([]Recommendation, len(candidates))
	for i, j := range candidates {
		items[i] = Recommendation{Product: t.products[j], Score: t.scores.At(idx, j)}
	}
	return items, true
}
