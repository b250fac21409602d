// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package segment clusters customers by Recency, Frequency and Monetary
// behavior and classifies new RFM triples into the fitted segments.
//
// The pipeline is: ComputeRFM → FitScaler → FitKMeans on standardized points
// → label the clusters. The resulting Model is immutable; Classify reuses the
// stored scaler and centroids and never refits.
package segment

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/retail"
)

// Dimensions of an RFM point.
const (
	DimRecency = iota
	DimFrequency
	DimMonetary
	Dims
)

// Point is an (R, F, M) triple, raw or standardized.
type Point [Dims]float64

// RFM holds one customer's derived metrics.
type RFM struct {
	CustomerID string
	// Recency is whole days between the latest invoice in the log and the
	// customer's latest invoice.
	Recency float64
	// Frequency counts the customer's invoice line items.
	Frequency float64
	// Monetary sums the customer's quantities. It is a quantity proxy for spend.
	Monetary float64
}

// Point returns the metrics as a raw point.
func (r RFM) Point() Point {
	return Point{r.Recency, r.Frequency, r.Monetary}
}

// ComputeRFM aggregates transactions per customer, sorted by CustomerID.
// Line items without an invoice date count toward Frequency and Monetary
// only. A customer with no dated line item is treated as the least recent
// customer in the log.
func ComputeRFM(txns []retail.Transaction) []RFM {
	type acc struct {
		last      time.Time
		frequency float64
		monetary  float64
	}

	byCustomer := make(map[string]*acc)
	var latest time.Time
	for i := range txns {
		t := &txns[i]
		a, ok := byCustomer[t.CustomerID]
		if !ok {
			a = &acc{}
			byCustomer[t.CustomerID] = a
		}
		a.frequency++
		a.monetary += t.Quantity
		if t.HasDate() {
			if t.InvoiceDate.After(a.last) {
				a.last = t.InvoiceDate
			}
			if t.InvoiceDate.After(latest) {
				latest = t.InvoiceDate
			}
		}
	}

	out := make([]RFM, 0, len(byCustomer))
	maxRecency := 0.0
	for id, a := range byCustomer {
		r := RFM{CustomerID: id, Frequency: a.frequency, Monetary: a.monetary, Recency: -1}
		if !a.last.IsZero() {
			r.Recency = wholeDays(latest.Sub(a.last))
			maxRecency = math.Max(maxRecency, r.Recency)
		}
		out = append(out, r)
	}
	for i := range out {
		if out[i].Recency < 0 {
			out[i].Recency = maxRecency
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

func wholeDays(d time.Duration) float64 {
	return math.Floor(d.Hours() / 24)
}
