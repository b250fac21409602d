// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package similarity

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/retail"
)

// Table is the symmetric product×product cosine similarity table.
type Table struct {
	products []string
	index    map[string]int
	scores   *mat.SymDense
}

// BuildTable computes cosine similarity between every pair of product
// columns of m. Columns are normalized to unit length and multiplied in one
// symmetric rank-k update, so sim(i,j) and sim(j,i) are the same stored value.
// A zero column scores 0 against every other product; the diagonal is 1.
func BuildTable(m *Matrix) *Table {
	t := &Table{products: m.Products()}
	t.reindex()

	p := len(t.products)
	if p == 0 {
		return t
	}
	if m.quantities == nil {
		t.scores = mat.NewSymDense(p, nil)
		t.setDiagonal()
		return t
	}

	rows, _ := m.quantities.Dims()
	unit := mat.NewDense(rows, p, nil)
	col := make([]float64, rows)
	for j := 0; j < p; j++ {
		mat.Col(col, j, m.quantities)
		norm := floats.Norm(col, 2)
		if norm == 0 {
			continue
		}
		floats.Scale(1/norm, col)
		unit.SetCol(j, col)
	}

	// scores = unitᵀ · unit
	var scores mat.SymDense
	scores.SymOuterK(1, unit.T())
	t.scores = &scores
	t.setDiagonal()
	return t
}

func (t *Table) setDiagonal() {
	for i := range t.products {
		t.scores.SetSym(i, i, 1)
	}
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.products))
	for i, p := range t.products {
		t.index[p] = i
	}
}

// Build produces the customer-product matrix and similarity table for txns.
func Build(txns []retail.Transaction) (*Matrix, *Table) {
	logger := logging.WithComponent("similarity")
	start := time.Now()

	m := BuildMatrix(txns)
	t := BuildTable(m)

	customers, products := m.Dims()
	logger.Info().
		Int("customers", customers).
		Int("products", products).
		Dur("duration", time.Since(start)).
		Msg("Similarity table built")
	return m, t
}

// Len returns the number of products.
func (t *Table) Len() int {
	return len(t.products)
}

// Products returns a copy of the product labels in column order.
func (t *Table) Products() []string {
	return append([]string(nil), t.products...)
}

// Contains reports whether product is a column of the table.
func (t *Table) Contains(product string) bool {
	_, ok := t.index[product]
	return ok
}

// Score returns sim(a, b) and whether both products are known.
func (t *Table) Score(a, b string) (float64, bool) {
	i, ok := t.index[a]
	if !ok {
		return 0, false
	}
	j, ok := t.index[b]
	if !ok {
		return 0, false
	}
	return t.scores.At(i, j), true
}

type tableBlob struct {
	Products []string
	// Upper holds the upper triangle row by row, diagonal included.
	Upper []float64
}

// GobEncode implements gob.GobEncoder.
func (t *Table) GobEncode() ([]byte, error) {
	p := len(t.products)
	blob := tableBlob{Products: t.products}
	if t.scores != nil {
		blob.Upper = make([]float64, 0, p*(p+1)/2)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				blob.Upper = append(blob.Upper, t.scores.At(i, j))
			}
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *Table) GobDecode(b []byte) error {
	var blob tableBlob
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&blob); err != nil {
		return err
	}
	p := len(blob.Products)
	t.products = blob.Products
	t.scores = nil
	t.reindex()
	if p == 0 {
		return nil
	}
	if len(blob.Upper) != p*(p+1)/2 {
		return fmt.Errorf("similarity table has %d scores, want %d for %d products", len(blob.Upper), p*(p+1)/2, p)
	}
	t.scores = mat.NewSymDense(p, nil)
	k := 0
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := blob.Upper[k]
			if math.IsNaN(v) {
				return fmt.Errorf("similarity (%d,%d) is NaN", i, j)
			}
			t.scores.SetSym(i, j, v)
			k++
		}
	}
	return nil
}
