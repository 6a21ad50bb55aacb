// Package stats contains frequency aggregation and chart rendering.
package stats

import (
	"errors"
	"sort"

	"github.com/verte-zerg/pareto/internal/model"
)

// ErrNoData reports an attempt to chart an empty set of counts.
var ErrNoData = errors.New("no data to chart")

// Group counts occurrences of each distinct name and sorts the result by
// count. The order among equal counts is unspecified.
func Group(samples []string, order model.Order) []model.GroupCount {
	if len(samples) == 0 {
		return []model.GroupCount{}
	}
	index := map[string]int{}
	out := make([]model.GroupCount, 0)
	for _, s := range samples {
		i, ok := index[s]
		if !ok {
			i = len(out)
			index[s] = i
			out = append(out, model.GroupCount{Name: s})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == model.Ascending {
			return out[i].Count < out[j].Count
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Total sums all counts.
func Total(counts []model.GroupCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// Cumulative returns the running sum of counts in display order.
func Cumulative(counts []model.GroupCount) []int {
	out := make([]int, len(counts))
	sum := 0
	for i, c := range counts {
		sum += c.Count
		out[i] = sum
	}
	return out
}

// CumulativePercent returns the running sum of counts as a percentage of
// the total. The last value is 100 for any non-empty input with a positive total.
func CumulativePercent(counts []model.GroupCount) []float64 {
	sums := Cumulative(counts)
	out := make([]float64, len(sums))
	if len(sums) == 0 {
		return out
	}
	total := float64(sums[len(sums)-1])
	if total <= 0 {
		return out
	}
	for i, s := range sums {
		out[i] = float64(s) / total * 100
	}
	return out
}

// MaxCount returns the largest count, or 0 for empty input.
func MaxCount(counts []model.GroupCount) int {
	maxVal := 0
	for _, c := range counts {
		if c.Count > maxVal {
			maxVal = c.Count
		}
	}
	return maxVal
}
