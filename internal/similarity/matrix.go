// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package similarity builds the customer×product quantity matrix and the
// product-product cosine similarity table, and answers top-N queries over it.
//
// Both structures are immutable once built and safe for concurrent readers.
package similarity

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/shopperspectrum/internal/retail"
)

// Matrix is the customer×product matrix of summed quantities. Rows follow
// Customers and columns follow Products, both in ascending lexical order.
type Matrix struct {
	customers  []string
	products   []string
	quantities *mat.Dense

	customerIdx map[string]int
	productIdx  map[string]int
}

// BuildMatrix groups transactions by (customer, product) and sums quantity.
// Absent combinations are 0.
func BuildMatrix(txns []retail.Transaction) *Matrix {
	customerSet := make(map[string]struct{})
	productSet := make(map[string]struct{})
	for i := range txns {
		customerSet[txns[i].CustomerID] = struct{}{}
		productSet[txns[i].Description] = struct{}{}
	}

	m := &Matrix{
		customers: sortedKeys(customerSet),
		products:  sortedKeys(productSet),
	}
	m.index()

	if len(m.customers) == 0 || len(m.products) == 0 {
		return m
	}

	m.quantities = mat.NewDense(len(m.customers), len(m.products), nil)
	for i := range txns {
		r := m.customerIdx[txns[i].CustomerID]
		c := m.productIdx[txns[i].Description]
		m.quantities.Set(r, c, m.quantities.At(r, c)+txns[i].Quantity)
	}
	return m
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *Matrix) index() {
	m.customerIdx = make(map[string]int, len(m.customers))
	for i, c := range m.customers {
		m.customerIdx[c] = i
	}
	m.productIdx = make(map[string]int, len(m.products))
	for i, p := range m.products {
		m.productIdx[p] = i
	}
}

// Dims returns (customers, products).
func (m *Matrix) Dims() (int, int) {
	return len(m.customers), len(m.products)
}

// Customers returns a copy of the row labels.
func (m *Matrix) Customers() []string {
	return append([]string(nil), m.customers...)
}

// Products returns a copy of the column labels.
func (m *Matrix) Products() []string {
	return append([]string(nil), m.products...)
}

// Quantity returns the summed quantity for a (customer, product) pair and
// whether both labels are known.
func (m *Matrix) Quantity(customer, product string) (float64, bool) {
	r, ok := m.customerIdx[customer]
	if !ok {
		return 0, false
	}
	c, ok := m.productIdx[product]
	if !ok {
		return 0, false
	}
	return m.quantities.At(r, c), true
}

// Dense exposes the underlying matrix read-only. Callers must not modify it.
func (m *Matrix) Dense() mat.Matrix {
	if m.quantities == nil {
		return nil
	}
	return m.quantities
}

type matrixBlob struct {
	Customers []string
	Products  []string
	Data      []byte
}

// GobEncode implements gob.GobEncoder.
func (m *Matrix) GobEncode() ([]byte, error) {
	blob := matrixBlob{Customers: m.customers, Products: m.products}
	if m.quantities != nil {
		data, err := m.quantities.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal quantities: %w", err)
		}
		blob.Data = data
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *Matrix) GobDecode(b []byte) error {
	var blob matrixBlob
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&blob); err != nil {
		return err
	}
	m.customers, m.products = blob.Customers, blob.Products
	m.quantities = nil
	if len(blob.Data) > 0 {
		var d mat.Dense
		if err := d.UnmarshalBinary(blob.Data); err != nil {
			return fmt.Errorf("unmarshal quantities: %w", err)
		}
		if r, c := d.Dims(); r != len(m.customers) || c != len(m.products) {
			return fmt.Errorf("quantities are %dx%d, labels are %dx%d", r, c, len(m.customers), len(m.products))
		}
		m.quantities = &d
	}
	m.index()
	return nil
}
