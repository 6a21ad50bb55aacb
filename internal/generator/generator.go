// Package generator draws synthetic categorical samples.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/pareto/internal/model"
)

var (
	// ErrInvalidWeight reports a weight set that cannot form a distribution.
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrInvalidCount reports a negative sample count.
	ErrInvalidCount = errors.New("invalid sample count")
)

// Generator produces weighted random category labels.
// It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator for the given seed. A zero seed uses the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Sample draws n names with replacement. The probability of each name is its
// weight divided by the total weight.
func (g *Generator) Sample(weights []model.CategoryWeight, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if err := Validate(weights); err != nil {
		return nil, err
	}
	result := make([]string, 0, n)
	if n == 0 {
		return result, nil
	}
	cdf := cumulativeDistribution(weights)
	for i := 0; i < n; i++ {
		r := g.rnd.Float64()
		idx := sort.Search(len(cdf), func(j int) bool { return cdf[j] > r })
		if idx >= len(cdf) {
			idx = len(cdf) - 1
		}
		result = append(result, weights[idx].Name)
	}
	return result, nil
}

// Shuffle permutes values in place.
func (g *Generator) Shuffle(values []float64) {
	g.rnd.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// Validate checks that weights form a usable distribution.
func Validate(weights []model.CategoryWeight) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidWeight)
	}
	seen := make(map[string]struct{}, len(weights))
	for _, w := range weights {
		if w.Name == "" {
			return fmt.Errorf("%w: empty category name", ErrInvalidWeight)
		}
		if _, ok := seen[w.Name]; ok {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidWeight, w.Name)
		}
		seen[w.Name] = struct{}{}
		if math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) || w.Weight <= 0 {
			return fmt.Errorf("%w: category %q has weight %v", ErrInvalidWeight, w.Name, w.Weight)
		}
	}
	return nil
}

// Distribution normalizes weights into probabilities that sum to 1.
// Weights are scaled by the largest one first so the total stays finite.
func Distribution(weights []model.CategoryWeight) []float64 {
	maxWeight := 0.0
	for _, w := range weights {
		maxWeight = math.Max(maxWeight, w.Weight)
	}
	probs := make([]float64, len(weights))
	if maxWeight <= 0 || math.IsInf(maxWeight, 0) {
		return probs
	}
	total := 0.0
	for _, w := range weights {
		total += w.Weight / maxWeight
	}
	for i, w := range weights {
		probs[i] = w.Weight / maxWeight / total
	}
	return probs
}

func cumulativeDistribution(weights []model.CategoryWeight) []float64 {
	probs := Distribution(weights)
	cdf := make([]float64, len(probs))
	acc := 0.0
	for i, p := range probs {
		acc += p
		cdf[i] = acc
	}
	// Rounding can leave the tail just below 1.
	cdf[len(cdf)-1] = 1
	return cdf
}
