// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package segment

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/shopperspectrum/internal/retail"
)

func at(s string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestComputeRFM(t *testing.T) {
	t.Parallel()

	txns := []retail.Transaction{
		{CustomerID: "A", Description: "MUG", Quantity: 2, InvoiceDate: at("2011-12-01 09:00")},
		{CustomerID: "A", Description: "CUP", Quantity: 3, InvoiceDate: at("2011-12-09 10:00")},
		{CustomerID: "B", Description: "MUG", Quantity: 1, InvoiceDate: at("2011-12-09 12:00")},
		{CustomerID: "B", Description: "MUG", Quantity: -1, InvoiceDate: at("2011-11-01 12:00")},
		{CustomerID: "C", Description: "LAMP", Quantity: 10, InvoiceDate: at("2011-11-29 12:00")},
		{CustomerID: "D", Description: "LAMP", Quantity: 4},
	}

	want := []RFM{
		{CustomerID: "A", Recency: 0, Frequency: 2, Monetary: 5},
		{CustomerID: "B", Recency: 0, Frequency: 2, Monetary: 0},
		{CustomerID: "C", Recency: 10, Frequency: 1, Monetary: 10},
		{CustomerID: "D", Recency: 10, Frequency: 1, Monetary: 4},
	}
	if diff := cmp.Diff(want, ComputeRFM(txns)); diff != "" {
		t.Errorf("ComputeRFM mismatch (-want +got):\n%s", diff)
	}
}

func TestScaler(t *testing.T) {
	t.Parallel()

	rows := []RFM{
		{Recency: 0, Frequency: 1, Monetary: 10},
		{Recency: 2, Frequency: 1, Monetary: 20},
		{Recency: 4, Frequency: 1, Monetary: 30},
	}
	s := FitScaler(rows)

	if s.Mean != (Point{2, 1, 20}) {
		t.Errorf("Mean = %v, want [2 1 20]", s.Mean)
	}
	if math.Abs(s.Std[DimRecency]-math.Sqrt(8.0/3)) > 1e-12 {
		t.Errorf("Std[R] = %v, want population std %v", s.Std[DimRecency], math.Sqrt(8.0/3))
	}
	if s.Std[DimFrequency] != 0 {
		t.Errorf("Std[F] = %v, want 0", s.Std[DimFrequency])
	}

	z := s.Transform(Point{4, 7, 20})
	if math.Abs(z[DimRecency]-2/math.Sqrt(8.0/3)) > 1e-12 {
		t.Errorf("z[R] = %v", z[DimRecency])
	}
	if z[DimFrequency] != 0 {
		t.Errorf("zero-variance dimension standardized to %v, want 0", z[DimFrequency])
	}
	if z[DimMonetary] != 0 {
		t.Errorf("z[M] = %v, want 0", z[DimMonetary])
	}

	back := s.Inverse(s.Transform(Point{3, 1, 25}))
	if math.Abs(back[DimRecency]-3) > 1e-9 || math.Abs(back[DimMonetary]-25) > 1e-9 {
		t.Errorf("Inverse(Transform(x)) = %v, want [3 1 25]", back)
	}
}

func TestFitScaler_Empty(t *testing.T) {
	t.Parallel()

	if s := FitScaler(nil); s != (Scaler{}) {
		t.Errorf("FitScaler(nil) = %+v, want zero value", s)
	}
}

func TestFitKMeans_SeparatedGroups(t *testing.T) {
	t.Parallel()

	var points []Point
	centers := []Point{{-5, -5, -5}, {0, 0, 0}, {5, 5, 5}}
	for g, c := range centers {
		for i := 0; i < 6; i++ {
			off := float64(i%3)*0.1 - 0.1
			points = append(points, Point{c[0] + off, c[1] - off, c[2] + float64(g)*0.01})
		}
	}

	cfg := KMeansConfig{K: 3, MaxIterations: 100, Tolerance: 1e-4, NInit: 5, Seed: 42}
	km, labels, err := FitKMeans(points, cfg)
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}

	for g := 0; g < 3; g++ {
		first := labels[g*6]
		for i := 1; i < 6; i++ {
			if labels[g*6+i] != first {
				t.Errorf("group %d split across clusters: %v", g, labels[g*6:g*6+6])
			}
		}
	}
	if labels[0] == labels[6] || labels[6] == labels[12] || labels[0] == labels[12] {
		t.Errorf("groups share a cluster: %v", labels)
	}
	for c, n := range km.Sizes {
		if n != 6 {
			t.Errorf("cluster %d has %d members, want 6", c, n)
		}
	}
	for i, p := range points {
		if got := km.Predict(p); got != labels[i] {
			t.Errorf("Predict(point %d) = %d, training label %d", i, got, labels[i])
		}
	}

	again, _, _ := FitKMeans(points, cfg)
	if diff := cmp.Diff(km, again); diff != "" {
		t.Errorf("same seed produced a different fit (-first +second):\n%s", diff)
	}
}

func TestFitKMeans_TooFewCustomers(t *testing.T) {
	t.Parallel()

	_, _, err := FitKMeans([]Point{{0, 0, 0}, {1, 1, 1}}, DefaultKMeansConfig())
	if !errors.Is(err, ErrTooFewCustomers) {
		t.Errorf("error = %v, want ErrTooFewCustomers", err)
	}
}

func TestFitKMeans_IdenticalPoints(t *testing.T) {
	t.Parallel()

	points := make([]Point, 7)
	km, labels, err := FitKMeans(points, DefaultKMeansConfig())
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}
	if km.Inertia != 0 {
		t.Errorf("Inertia = %v, want 0", km.Inertia)
	}
	for i, l := range labels {
		if l != 0 {
			t.Errorf("label[%d] = %d, want 0 (ties go to the lowest index)", i, l)
		}
	}
}

func TestPredict_TieGoesToLowerIndex(t *testing.T) {
	t.Parallel()

	km := &KMeans{Centroids: []Point{{1, 0, 0}, {-1, 0, 0}}}
	if got := km.Predict(Point{}); got != 0 {
		t.Errorf("Predict(origin) = %d, want 0", got)
	}
}

func TestRankedLabels(t *testing.T) {
	t.Parallel()

	centroids := []Point{
		{1.5, -0.5, -0.4}, // value -2.4
		{-0.8, 2.0, 2.5},  // value 5.3
		{-0.7, 0.1, 0.0},  // most recent of the middle three
		{0.6, 0.9, 0.2},   // more frequent of the last two
		{0.7, 0.0, 1.1},
	}
	want := LabelMap{0: Hibernating, 1: Champions, 2: PotentialLoyalists, 3: LoyalCustomers, 4: AtRisk}

	got, err := RankedLabels(centroids)
	if err != nil {
		t.Fatalf("RankedLabels() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	// Reordering the centroids moves the labels with them.
	perm := []int{3, 0, 4, 1, 2}
	shuffled := make([]Point, len(perm))
	for i, p := range perm {
		shuffled[i] = centroids[p]
	}
	got, _ = RankedLabels(shuffled)
	for i, p := range perm {
		if got[i] != want[p] {
			t.Errorf("shuffled cluster %d labeled %q, want %q", i, got[i], want[p])
		}
	}

	if _, err := RankedLabels(centroids[:4]); err == nil {
		t.Error("RankedLabels with four centroids should fail")
	}
}

func TestStaticLabelsAndUnknown(t *testing.T) {
	t.Parallel()

	m := StaticLabels(6)
	if m.Label(0) != Champions || m.Label(4) != Hibernating {
		t.Errorf("static labels = %v", m)
	}
	if m.Label(5) != Unknown {
		t.Errorf("Label(5) = %q, want %q", m.Label(5), Unknown)
	}
	if Insight(Unknown) != "" {
		t.Errorf("Insight(Unknown) = %q, want empty", Insight(Unknown))
	}
	if Insight(AtRisk) != "Spent big but haven't purchased lately" {
		t.Errorf("Insight(AtRisk) = %q", Insight(AtRisk))
	}
}

// syntheticLog generates 40 customers with spread-out RFM behavior.
func syntheticLog() []retail.Transaction {
	end := at("2011-12-09 12:00")
	var txns []retail.Transaction
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("C%03d", i)
		lines := 1 + (i*7)%13
		qty := float64(1 + (i*5)%17)
		daysAgo := (i * 11) % 90
		for l := 0; l < lines; l++ {
			txns = append(txns, retail.Transaction{
				CustomerID:  id,
				Description: fmt.Sprintf("ITEM %d", l%4),
				Quantity:    qty,
				InvoiceNo:   fmt.Sprintf("%d-%d", i, l),
				InvoiceDate: end.AddDate(0, 0, -daysAgo-l),
			})
		}
	}
	return txns
}

func TestBuild_ClassifyReproducesTrainingAssignment(t *testing.T) {
	t.Parallel()

	res, err := Build(syntheticLog(), DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(res.RFM) != 40 || len(res.Assignments) != 40 {
		t.Fatalf("got %d RFM rows and %d assignments, want 40", len(res.RFM), len(res.Assignments))
	}

	for i, row := range res.RFM {
		got := res.Model.Classify(row.Recency, row.Frequency, row.Monetary)
		if got.Cluster != res.Assignments[i] {
			t.Errorf("customer %s classified into %d, trained into %d", row.CustomerID, got.Cluster, res.Assignments[i])
		}
		if got.Segment != res.Model.Labels.Label(got.Cluster) || got.Insight == "" {
			t.Errorf("classification %+v inconsistent with label map", got)
		}
	}

	seen := map[string]bool{}
	for _, info := range res.Model.Segments() {
		seen[info.Segment] = true
	}
	for _, name := range SegmentOrder {
		if !seen[name] {
			t.Errorf("labeling did not assign %q", name)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Build(syntheticLog(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(syntheticLog(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Model, second.Model); diff != "" {
		t.Errorf("rebuild changed the model (-first +second):\n%s", diff)
	}
}

func TestClassify_StableAndPermissive(t *testing.T) {
	t.Parallel()

	res, err := Build(syntheticLog(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		r, f, m float64
	}{
		{"dashboard defaults", 30, 5, 1000},
		{"negative recency", -10, 3, 50},
		{"negative everything", -1, -1, -1},
		{"huge values", 1e9, 1e9, 1e9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := res.Model.Classify(tt.r, tt.f, tt.m)
			b := res.Model.Classify(tt.r, tt.f, tt.m)
			if a != b {
				t.Errorf("Classify not stable: %+v vs %+v", a, b)
			}
			if a.Cluster < 0 || a.Cluster >= 5 || a.Segment == Unknown {
				t.Errorf("Classify(%v, %v, %v) = %+v", tt.r, tt.f, tt.m, a)
			}
		})
	}
}

func TestBuild_DefaultLabelingIsStatic(t *testing.T) {
	t.Parallel()

	res, err := Build(syntheticLog(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(StaticLabels(5), res.Model.Labels); diff != "" {
		t.Errorf("default labels mismatch (-want +got):\n%s", diff)
	}
	if got := res.Model.Labels.Label(0); got != Champions {
		t.Errorf("Label(0) = %q, want %q", got, Champions)
	}
	if got := res.Model.Labels.Label(4); got != Hibernating {
		t.Errorf("Label(4) = %q, want %q", got, Hibernating)
	}
}

func TestBuild_RankedLabelingOptIn(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Labeling = LabelingRanked
	res, err := Build(syntheticLog(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	want, err := RankedLabels(res.Model.Clusters.Centroids)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, res.Model.Labels); diff != "" {
		t.Errorf("ranked labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_TooFewCustomers(t *testing.T) {
	t.Parallel()

	_, err := Build(syntheticLog()[:3], DefaultConfig())
	if !errors.Is(err, ErrTooFewCustomers) {
		t.Errorf("error = %v, want ErrTooFewCustomers", err)
	}
}

func TestModel_UnknownClusterLabel(t *testing.T) {
	t.Parallel()

	m, err := NewModel(Scaler{Std: [Dims]float64{1, 1, 1}}, &KMeans{Centroids: []Point{{0, 0, 0}, {9, 9, 9}}}, LabelMap{0: Champions})
	if err != nil {
		t.Fatal(err)
	}
	got := m.Classify(10, 10, 10)
	if got.Segment != Unknown || got.Cluster != 1 || got.Insight != "" {
		t.Errorf("Classify = %+v, want Unknown in cluster 1", got)
	}

	if _, err := NewModel(Scaler{}, &KMeans{}, nil); err == nil {
		t.Error("NewModel without centroids should fail")
	}
}
