package generator

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/verte-zerg/pareto/internal/model"
)

func abcWeights() []model.CategoryWeight {
	return []model.CategoryWeight{
		{Name: "A", Weight: 1},
		{Name: "B", Weight: 5},
		{Name: "C", Weight: 10},
	}
}

func TestSampleLengthAndMembership(t *testing.T) {
	g := New(42)
	names := map[string]bool{"A": true, "B": true, "C": true}
	for _, n := range []int{0, 1, 10, 257} {
		out, err := g.Sample(abcWeights(), n)
		if err != nil {
			t.Fatalf("sample %d: %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("expected %d samples, got %d", n, len(out))
		}
		for _, name := range out {
			if !names[name] {
				t.Fatalf("unexpected name %q", name)
			}
		}
	}
}

func TestSampleZeroReturnsEmpty(t *testing.T) {
	out, err := New(1).Sample(abcWeights(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	a, err := New(7).Sample(abcWeights(), 50)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := NewWithSource(rand.NewSource(7)).Sample(abcWeights(), 50)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("samples diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestSampleFollowsWeights(t *testing.T) {
	const n = 16000
	out, err := New(99).Sample(abcWeights(), n)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	counts := map[string]int{}
	for _, name := range out {
		counts[name]++
	}
	want := map[string]float64{"A": 1.0 / 16, "B": 5.0 / 16, "C": 10.0 / 16}
	for name, p := range want {
		got := float64(counts[name]) / n
		if math.Abs(got-p) > 0.03 {
			t.Fatalf("category %s: expected share near %.3f, got %.3f", name, p, got)
		}
	}
	if !(counts["C"] > counts["B"] && counts["B"] > counts["A"]) {
		t.Fatalf("expected C > B > A, got %v", counts)
	}
}

func TestSampleRejectsInvalidWeights(t *testing.T) {
	cases := []struct {
		name    string
		weights []model.CategoryWeight
	}{
		{name: "empty", weights: nil},
		{name: "zero", weights: []model.CategoryWeight{{Name: "A", Weight: 0}}},
		{name: "negative", weights: []model.CategoryWeight{{Name: "A", Weight: 2}, {Name: "B", Weight: -1}}},
		{name: "nan", weights: []model.CategoryWeight{{Name: "A", Weight: math.NaN()}}},
		{name: "inf", weights: []model.CategoryWeight{{Name: "A", Weight: math.Inf(1)}}},
		{name: "duplicate", weights: []model.CategoryWeight{{Name: "A", Weight: 1}, {Name: "A", Weight: 2}}},
		{name: "blank name", weights: []model.CategoryWeight{{Name: "", Weight: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(1).Sample(tc.weights, 5)
			if !errors.Is(err, ErrInvalidWeight) {
				t.Fatalf("expected ErrInvalidWeight, got %v", err)
			}
		})
	}
}

func TestSampleRejectsNegativeCount(t *testing.T) {
	_, err := New(1).Sample(abcWeights(), -1)
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestDistributionSumsToOne(t *testing.T) {
	probs := Distribution(abcWeights())
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("expected probabilities to sum to 1, got %v", sum)
	}
	if math.Abs(probs[2]-10.0/16) > 1e-12 {
		t.Fatalf("unexpected probability for C: %v", probs[2])
	}
}

func TestDistributionHugeWeights(t *testing.T) {
	weights := []model.CategoryWeight{
		{Name: "A", Weight: 1e308},
		{Name: "B", Weight: 1e308},
	}
	probs := Distribution(weights)
	for i, p := range probs {
		if math.Abs(p-0.5) > 1e-12 {
			t.Fatalf("expected probability 0.5 at %d, got %v", i, p)
		}
	}
	out, err := New(17).Sample(weights, 1000)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	counts := map[string]int{}
	for _, name := range out {
		counts[name]++
	}
	if counts["A"] < 400 || counts["B"] < 400 {
		t.Fatalf("expected an even split, got %v", counts)
	}
}

func TestShuffleKeepsValues(t *testing.T) {
	values := []float64{37, 7, 5, 4, 3, 2, 1, 1, 1}
	shuffled := append([]float64(nil), values...)
	New(3).Shuffle(shuffled)
	sort.Float64s(values)
	sort.Float64s(shuffled)
	for i := range values {
		if values[i] != shuffled[i] {
			t.Fatalf("shuffle changed values: %v vs %v", values, shuffled)
		}
	}
}
