// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package cache

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func productTrie() *Trie {
	return NewTrieFrom([]string{
		"WHITE HANGING HEART T-LIGHT HOLDER",
		"WHITE METAL LANTERN",
		"CREAM CUPID HEARTS COAT HANGER",
		"Wrap Vintage Leaf",
		"WHITE METAL LANTERN", // duplicate
	})
}

func TestTrie_Insert(t *testing.T) {
	t.Parallel()

	trie := NewTrie()
	if !trie.Insert("MUG") {
		t.Error("Insert(MUG) = false for a new value")
	}
	if trie.Insert("MUG") {
		t.Error("Insert(MUG) = true for an existing value")
	}
	if !trie.Insert("mug") {
		t.Error("Insert(mug) = false; spellings differing in case are distinct values")
	}
	if trie.Insert("") {
		t.Error("Insert(\"\") = true")
	}
	if got := len(trie.Complete("", 0)); got != 2 {
		t.Errorf("values = %d, want 2", got)
	}
	if got := len(productTrie().Complete("", 0)); got != 4 {
		t.Errorf("productTrie values = %d, want 4", got)
	}
}

func TestTrie_Complete(t *testing.T) {
	t.Parallel()

	trie := productTrie()
	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{
			name:   "all",
			prefix: "",
			want: []string{
				"CREAM CUPID HEARTS COAT HANGER",
				"WHITE HANGING HEART T-LIGHT HOLDER",
				"WHITE METAL LANTERN",
				"Wrap Vintage Leaf",
			},
		},
		{
			name:   "case-insensitive prefix",
			prefix: "w",
			want: []string{
				"WHITE HANGING HEART T-LIGHT HOLDER",
				"WHITE METAL LANTERN",
				"Wrap Vintage Leaf",
			},
		},
		{name: "limit", prefix: "white", limit: 1, want: []string{"WHITE HANGING HEART T-LIGHT HOLDER"}},
		{name: "exact value", prefix: "white metal lantern", want: []string{"WHITE METAL LANTERN"}},
		{name: "no match", prefix: "zz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trie.Complete(tt.prefix, tt.limit)
			if got == nil {
				t.Fatal("Complete returned nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Complete(%q, %d) mismatch (-want +got):\n%s", tt.prefix, tt.limit, diff)
			}
		})
	}
}

func TestTrie_Unicode(t *testing.T) {
	t.Parallel()

	trie := NewTrieFrom([]string{"CRÈME BRÛLÉE SET", "CRÊPE PAN"})
	if diff := cmp.Diff([]string{"CRÈME BRÛLÉE SET"}, trie.Complete("crè", 0)); diff != "" {
		t.Errorf("Complete mismatch (-want +got):\n%s", diff)
	}
}

func TestTrie_Concurrent(t *testing.T) {
	t.Parallel()

	trie := NewTrie()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			trie.Insert(string(rune('A' + i)))
		}(i)
		go func() {
			defer wg.Done()
			_ = trie.Complete("", 0)
		}()
	}
	wg.Wait()

	if got := len(trie.Complete("", 0)); got != 8 {
		t.Errorf("values = %d, want 8", got)
	}
}
