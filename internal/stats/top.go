// Package stats contains frequency aggregation and chart rendering.
package stats

import (
	"github.com/verte-zerg/pareto/internal/model"
)

// DefaultThreshold is the cumulative percentage marked by the reference line.
const DefaultThreshold = 80.0

// VitalFew returns the shortest prefix of counts whose cumulative share
// reaches threshold percent.
func VitalFew(counts []model.GroupCount, threshold float64) []model.GroupCount {
	if len(counts) == 0 {
		return nil
	}
	pct := CumulativePercent(counts)
	n := len(counts)
	for i, p := range pct {
		if p >= threshold-1e-9 {
			n = i + 1
			break
		}
	}
	out := make([]model.GroupCount, n)
	copy(out, counts[:n])
	return out
}
