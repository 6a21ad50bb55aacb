// Package stats contains frequency aggregation and chart rendering.
package stats

import (
	"github.com/verte-zerg/pareto/internal/model"
)

// Report contains precomputed data for chart rendering.
type Report struct {
	Counts     []model.GroupCount
	Cumulative []int
	Percent    []float64
	Total      int
	VitalFew   []model.GroupCount
}

// BuildReport aggregates samples and derives the cumulative series.
func BuildReport(samples []string, order model.Order) Report {
	return ReportFor(Group(samples, order))
}

// ReportFor derives the cumulative series for counts already in display order.
func ReportFor(counts []model.GroupCount) Report {
	return Report{
		Counts:     counts,
		Cumulative: Cumulative(counts),
		Percent:    CumulativePercent(counts),
		Total:      Total(counts),
		VitalFew:   VitalFew(counts, DefaultThreshold),
	}
}
