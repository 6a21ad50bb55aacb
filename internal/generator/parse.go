package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/pareto/internal/model"
)

// ParseWeights parses a comma-separated list of name=weight pairs.
func ParseWeights(input string) ([]model.CategoryWeight, error) {
	parts := strings.Split(input, ",")
	weights := make([]model.CategoryWeight, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=weight", ErrInvalidWeight, part)
		}
		name = strings.TrimSpace(name)
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidWeight, name, err)
		}
		weights = append(weights, model.CategoryWeight{Name: name, Weight: w})
	}
	if err := Validate(weights); err != nil {
		return nil, err
	}
	return weights, nil
}

// Zip pairs names with weights by position.
func Zip(names []string, weights []float64) ([]model.CategoryWeight, error) {
	if len(names) != len(weights) {
		return nil, fmt.Errorf("%w: %d names for %d weights", ErrInvalidWeight, len(names), len(weights))
	}
	out := make([]model.CategoryWeight, len(names))
	for i := range names {
		out[i] = model.CategoryWeight{Name: names[i], Weight: weights[i]}
	}
	return out, nil
}
