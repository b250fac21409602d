// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes RFM points with per-dimension mean and population
// standard deviation fitted once on the training table.
type Scaler struct {
	Mean [Dims]float64
	Std  [Dims]float64
}

// FitScaler fits mean and population standard deviation per dimension.
func FitScaler(rows []RFM) Scaler {
	var s Scaler
	if len(rows) == 0 {
		return s
	}
	col := make([]float64, len(rows))
	for d := 0; d < Dims; d++ {
		for i := range rows {
			col[i] = rows[i].Point()[d]
		}
		s.Mean[d], s.Std[d] = stat.PopMeanStdDev(col, nil)
	}
	return s
}

// Transform standardizes p. A dimension with zero standard deviation maps to 0.
func (s Scaler) Transform(p Point) Point {
	var out Point
	for d := 0; d < Dims; d++ {
		if s.Std[d] == 0 {
			continue
		}
		out[d] = (p[d] - s.Mean[d]) / s.Std[d]
	}
	return out
}

// Inverse maps a standardized point back to raw RFM units.
func (s Scaler) Inverse(p Point) Point {
	var out Point
	for d := 0; d < Dims; d++ {
		out[d] = s.Mean[d] + p[d]*s.Std[d]
	}
	return out
}
