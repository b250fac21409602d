// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewCustomers is returned when there are fewer points than clusters.
var ErrTooFewCustomers = errors.New("fewer customers than clusters")

// KMeansConfig bounds a k-means fit.
type KMeansConfig struct {
	K             int
	MaxIterations int
	// Tolerance is relative to the mean per-dimension variance of the data,
	// applied to the summed squared centroid shift.
	Tolerance float64
	// NInit independent k-means++ initializations are run; the lowest
	// inertia wins.
	NInit int
	Seed  int64
}

// DefaultKMeansConfig returns the five-segment configuration.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{K: 5, MaxIterations: 300, Tolerance: 1e-4, NInit: 10, Seed: 42}
}

// KMeans is a fitted centroid partition of standardized RFM space.
// Points are assigned to the nearest centroid by squared Euclidean distance;
// equal distances go to the lower cluster index.
type KMeans struct {
	Centroids  []Point
	Sizes      []int
	Inertia    float64
	Iterations int
}

// FitKMeans partitions points into cfg.K clusters with Lloyd's algorithm
// seeded by k-means++. The fit is a pure function of points and cfg.
func FitKMeans(points []Point, cfg KMeansConfig) (*KMeans, []int, error) {
	if cfg.K < 1 {
		return nil, nil, fmt.Errorf("k must be at least 1, got %d", cfg.K)
	}
	if len(points) < cfg.K {
		return nil, nil, fmt.Errorf("%w: %d customers for %d clusters", ErrTooFewCustomers, len(points), cfg.K)
	}
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = 1
	}
	if cfg.NInit < 1 {
		cfg.NInit = 1
	}

	tol := cfg.Tolerance * meanVariance(points)
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible clustering, not security

	var best *KMeans
	var bestLabels []int
	for run := 0; run < cfg.NInit; run++ {
		centroids := seedPlusPlus(points, cfg.K, rng)
		km, labels := lloyd(points, centroids, cfg.MaxIterations, tol)
		if best == nil || km.Inertia < best.Inertia {
			best, bestLabels = km, labels
		}
	}
	return best, bestLabels, nil
}

func meanVariance(points []Point) float64 {
	col := make([]float64, len(points))
	total := 0.0
	for d := 0; d < Dims; d++ {
		for i := range points {
			col[i] = points[i][d]
		}
		total += stat.PopVariance(col, nil)
	}
	return total / Dims
}

func sqDist(a, b Point) float64 {
	sum := 0.0
	for d := 0; d < Dims; d++ {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}

// seedPlusPlus picks k initial centroids, each sampled with probability
// proportional to its squared distance from the nearest centroid so far.
func seedPlusPlus(points []Point, k int, rng *rand.Rand) []Point {
	centroids := make([]Point, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	closest := make([]float64, len(points))
	for i := range points {
		closest[i] = sqDist(points[i], centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(closest)
		next := rng.IntN(len(points))
		if total > 0 {
			target := rng.Float64() * total
			cum := 0.0
			for i, d := range closest {
				cum += d
				if cum > target {
					next = i
					break
				}
			}
		}
		c := points[next]
		centroids = append(centroids, c)
		for i := range points {
			if d := sqDist(points[i], c); d < closest[i] {
				closest[i] = d
			}
		}
	}
	return centroids
}

func nearest(p Point, centroids []Point) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c := range centroids {
		if d := sqDist(p, centroids[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// lloyd alternates assignment and update steps until the summed squared
// centroid shift is at most tol or maxIter is reached. The returned labels
// are always the nearest-centroid assignment for the returned centroids.
func lloyd(points []Point, centroids []Point, maxIter int, tol float64) (*KMeans, []int) {
	k := len(centroids)
	labels := make([]int, len(points))
	iterations := 0

	for iterations < maxIter {
		iterations++
		for i := range points {
			labels[i], _ = nearest(points[i], centroids)
		}

		sums := make([]Point, k)
		counts := make([]int, k)
		for i, l := range labels {
			counts[l]++
			for d := 0; d < Dims; d++ {
				sums[l][d] += points[i][d]
			}
		}

		shift := 0.0
		for c := 0; c < k; c++ {
			// An empty cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			var next Point
			for d := 0; d < Dims; d++ {
				next[d] = sums[c][d] / float64(counts[c])
			}
			shift += sqDist(next, centroids[c])
			centroids[c] = next
		}
		if shift <= tol {
			break
		}
	}

	km := &KMeans{Centroids: centroids, Sizes: make([]int, k), Iterations: iterations}
	for i := range points {
		var d float64
		labels[i], d = nearest(points[i], centroids)
		km.Sizes[labels[i]]++
		km.Inertia += d
	}
	return km, labels
}

// Predict returns the index of the centroid nearest to p.
func (km *KMeans) Predict(p Point) int {
	c, _ := nearest(p, km.Centroids)
	return c
}

// K returns the number of clusters.
func (km *KMeans) K() int {
	return len(km.Centroids)
}
