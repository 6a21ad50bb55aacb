// Package chart renders Pareto charts to PNG and SVG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/pareto/internal/model"
	"github.com/verte-zerg/pareto/internal/stats"
)

// ErrUnknownFormat reports an unsupported image format.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an image encoding.
type Format string

const (
	// PNG encodes the chart as a raster image.
	PNG Format = "png"
	// SVG encodes the chart as a vector image.
	SVG Format = "svg"
)

const (
	// DefaultWidth is the image width in pixels when none is given.
	DefaultWidth = 1024
	// DefaultHeight is the image height in pixels when none is given.
	DefaultHeight = 640
	// DefaultTitle is used when the chart has no title.
	DefaultTitle = "Pareto Chart"

	barWidth       = 0.5
	percentAxisMax = 110.0
	countHeadroom  = 1.1
)

var (
	barColor  = drawing.ColorFromHex("2E7D32")
	lineColor = gochart.ColorRed
)

// Options configures image rendering.
type Options struct {
	Title  string
	Width  int
	Height int
	Format Format
}

// ParseFormat resolves a format name; an empty name falls back to the file
// extension of path.
func ParseFormat(name, path string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch Format(name) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q (want png or svg)", ErrUnknownFormat, name)
	}
}

// Render writes the chart for counts, kept in the given order, to w.
func Render(w io.Writer, counts []model.GroupCount, opts Options) error {
	if len(counts) == 0 {
		return stats.ErrNoData
	}
	var provider gochart.RendererProvider
	switch opts.Format {
	case PNG, "":
		provider = gochart.PNG
	case SVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	c := Build(counts, opts)
	if err := c.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderFile renders the chart to path, replacing any existing file.
func RenderFile(path string, counts []model.GroupCount, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "pareto-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp chart: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := Render(tmpFile, counts, opts); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close chart: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// Build assembles the go-chart definition: bars on the primary axis, the
// cumulative percentage line and the reference line on the secondary axis.
func Build(counts []model.GroupCount, opts Options) gochart.Chart {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	n := len(counts)
	xMin, xMax := 0.5, float64(n)+0.5
	xs := make([]float64, n)
	ys := make([]float64, n)
	// go-chart derives the x range from the ticks, so the unlabeled edge
	// ticks pin it to [xMin, xMax].
	ticks := make([]gochart.Tick, 0, n+2)
	ticks = append(ticks, gochart.Tick{Value: xMin})
	for i, c := range counts {
		xs[i] = float64(i + 1)
		ys[i] = float64(c.Count)
		ticks = append(ticks, gochart.Tick{Value: xs[i], Label: c.Name})
	}
	ticks = append(ticks, gochart.Tick{Value: xMax})
	pct := stats.CumulativePercent(counts)

	countMax := math.Ceil(float64(stats.MaxCount(counts)) * countHeadroom)
	if countMax < 1 {
		countMax = 1
	}
	yTicks := countTicks(countMax, 5)
	countMax = yTicks[len(yTicks)-1].Value

	c := gochart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  "Category",
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Name:  "Count",
			Range: &gochart.ContinuousRange{Min: 0, Max: countMax},
			Ticks: yTicks,
		},
		// Explicit secondary ticks would make go-chart take this range from
		// the primary ticks instead.
		YAxisSecondary: gochart.YAxis{
			Name:           "Cumulative Count",
			Range:          &gochart.ContinuousRange{Min: 0, Max: percentAxisMax},
			ValueFormatter: percentFormatter,
		},
		Series: []gochart.Series{
			barSeries{
				name:  "Count",
				xs:    xs,
				ys:    ys,
				width: barWidth,
				yAxis: gochart.YAxisPrimary,
				style: gochart.Style{FillColor: barColor, StrokeColor: gochart.ColorBlack, StrokeWidth: 1},
			},
			gochart.ContinuousSeries{
				Name:    "Cumulative %",
				YAxis:   gochart.YAxisSecondary,
				XValues: xs,
				YValues: pct,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
			gochart.ContinuousSeries{
				Name:    fmt.Sprintf("%.0f%%", stats.DefaultThreshold),
				YAxis:   gochart.YAxisSecondary,
				XValues: []float64{xMin, xMax},
				YValues: []float64{stats.DefaultThreshold, stats.DefaultThreshold},
				Style: gochart.Style{
					StrokeColor:     lineColor,
					StrokeWidth:     1,
					StrokeDashArray: []float64{6, 4},
				},
			},
		},
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return c
}

// countTicks returns evenly spaced ticks from 0 through the first step at or
// above maxVal.
func countTicks(maxVal float64, steps int) []gochart.Tick {
	step := math.Ceil(maxVal / float64(steps))
	if step < 1 {
		step = 1
	}
	end := math.Ceil(maxVal/step) * step
	ticks := make([]gochart.Tick, 0, steps+2)
	for i := 0; float64(i)*step <= end+step/2; i++ {
		v := float64(i) * step
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 0, 64)})
	}
	return ticks
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}
