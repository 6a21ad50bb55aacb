package chart

import (
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// barSeries draws one vertical bar per x value, centered on x, against the
// chart's shared axes.
type barSeries struct {
	name  string
	xs    []float64
	ys    []float64
	width float64
	yAxis gochart.YAxisType
	style gochart.Style
}

// GetName implements gochart.Series.
func (bs barSeries) GetName() string { return bs.name }

// GetYAxis implements gochart.Series.
func (bs barSeries) GetYAxis() gochart.YAxisType { return bs.yAxis }

// GetStyle implements gochart.Series.
func (bs barSeries) GetStyle() gochart.Style { return bs.style }

// Len implements gochart.ValuesProvider.
func (bs barSeries) Len() int { return len(bs.xs) }

// GetValues implements gochart.ValuesProvider.
func (bs barSeries) GetValues(i int) (float64, float64) { return bs.xs[i], bs.ys[i] }

// Validate implements gochart.Series.
func (bs barSeries) Validate() error {
	if len(bs.xs) == 0 {
		return fmt.Errorf("bar series %q has no values", bs.name)
	}
	if len(bs.xs) != len(bs.ys) {
		return fmt.Errorf("bar series %q has %d x values and %d y values", bs.name, len(bs.xs), len(bs.ys))
	}
	return nil
}

// Render implements gochart.Series.
func (bs barSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := bs.style.InheritFrom(defaults)
	half := bs.width / 2
	for i := range bs.xs {
		left := canvasBox.Left + xrange.Translate(bs.xs[i]-half)
		right := canvasBox.Left + xrange.Translate(bs.xs[i]+half)
		top := canvasBox.Bottom - yrange.Translate(bs.ys[i])
		bottom := canvasBox.Bottom - yrange.Translate(0)
		if top >= bottom {
			continue
		}
		r.SetFillColor(style.GetFillColor())
		r.SetStrokeColor(style.GetStrokeColor())
		r.SetStrokeWidth(style.GetStrokeWidth())
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()
		r.ResetStyle()
	}
}
