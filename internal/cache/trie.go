// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode struct {
	children map[rune]*trieNode
	values   []string // original spellings that fold to this key
}

// Trie is a case-insensitive prefix index over product names. Lookups are
// O(m) in the prefix length plus the number of matches.
type Trie struct {
	mu   sync.RWMutex
	root *trieNode
}

// NewTrie creates an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// NewTrieFrom indexes values.
func NewTrieFrom(values []string) *Trie {
	t := NewTrie()
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func foldKey(s string) string {
	return strings.ToUpper(s)
}

// Insert adds value and reports whether it was new. Empty values are ignored.
func (t *Trie) Insert(value string) bool {
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range foldKey(value) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}
	for _, v := range node.values {
		if v == value {
			return false
		}
	}
	node.values = append(node.values, value)
	return true
}

// Complete returns up to limit values starting with prefix, ignoring case,
// in byte order of the original spelling. limit <= 0 means no limit. The
// result is never nil.
func (t *Trie) Complete(prefix string, limit int) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []string{}
	node := t.find(foldKey(prefix))
	if node == nil {
		return out
	}
	out = collect(node, out)
	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t *Trie) find(key string) *trieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect(node *trieNode, out []string) []string {
	out = append(out, node.values...)
	for _, child := range node.children {
		out = collect(child, out)
	}
	return out
}
