// Package stats contains frequency aggregation and chart rendering.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/pareto/internal/model"
)

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 12
	minPlotWidth        = 10
	minSlotWidth        = 2
	percentAxisMax      = 110.0
	axisSeparator       = " │ "
	percentLabelWidth   = 4
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

const (
	layerLine = iota
	layerReference
	layerBars
	layerCount
)

var (
	solidLine  = lineStyle{name: "solid", period: 1, on: 1}
	dashedLine = lineStyle{name: "dashed", period: 6, on: 3}
)

// Colors are indexed by layer; earlier layers win when cells overlap.
var layerColors = [layerCount]ansiColor{
	{name: "red", code: "\x1b[31m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
}

// PlotPareto renders counts as a braille Pareto chart. Width is the plot
// area in cells; zero derives it from the terminal width.
func PlotPareto(w io.Writer, title string, counts []model.GroupCount, width, height int) error {
	return plotPareto(w, title, counts, width, height, false)
}

// PlotParetoWithColor renders a Pareto chart with optional forced color output.
func PlotParetoWithColor(w io.Writer, title string, counts []model.GroupCount, width, height int, forceColor bool) error {
	return plotPareto(w, title, counts, width, height, forceColor)
}

func plotPareto(w io.Writer, title string, counts []model.GroupCount, width, height int, forceColor bool) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth(), counts)
	}
	if width < len(counts)*minSlotWidth {
		width = len(counts) * minSlotWidth
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	dotsX := width * 2
	dotsY := height * 4
	maxCount := MaxCount(counts)
	if maxCount <= 0 {
		maxCount = 1
	}
	pct := CumulativePercent(counts)

	var layers [layerCount][][]uint8
	for i := range layers {
		layers[i] = makeCells(height, width)
	}

	slots := makeSlots(len(counts), dotsX)
	for i, c := range counts {
		if c.Count <= 0 {
			continue
		}
		s := slots[i]
		top := valueToRow(float64(c.Count), 0, float64(maxCount), dotsY)
		for x := s.barLeft; x < s.barRight; x++ {
			for y := top; y < dotsY; y++ {
				setBrailleDot(layers[layerBars], x, y)
			}
		}
	}

	refRow := valueToRow(DefaultThreshold, 0, percentAxisMax, dotsY)
	for x := 0; x < dotsX; x++ {
		if dashedLine.shouldPlot(x) {
			setBrailleDot(layers[layerReference], x, refRow)
		}
	}

	prevX, prevY := -1, -1
	for i, p := range pct {
		px := slots[i].center
		py := valueToRow(p, 0, percentAxisMax, dotsY)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if solidLine.shouldPlot(dx) {
					setBrailleDot(layers[layerLine], dx, dy)
				}
			})
		}
		drawMarker(layers[layerLine], px, py)
		prevX, prevY = px, py
	}

	useColor := shouldUseColor(w, forceColor)
	countLabels := makeCountLabels(height, maxCount)
	leftWidth := len(strconv.Itoa(maxCount))
	percentLabels := makePercentLabels(height, refRow/4)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Count (bars, 0-%d) │ Cumulative Count (line, 0-%.0f%%)\n", maxCount, percentAxisMax); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", leftWidth, countLabels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, layer := composeCell(layers[:], x, y)
			ch := brailleFromMask(mask)
			if useColor && layer >= 0 {
				row.WriteString(layerColors[layer].code)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		row.WriteString(axisSeparator)
		row.WriteString(percentLabels[y])
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	indent := strings.Repeat(" ", leftWidth+displayWidth(axisSeparator))
	if _, err := fmt.Fprintln(w, indent+renderCategoryLabels(counts, slots, width)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, indent+"Category"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, renderLegend(useColor)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// slot is the horizontal span of one category, in braille dots.
type slot struct {
	start    int
	end      int
	center   int
	barLeft  int
	barRight int
}

func makeSlots(n, dotsX int) []slot {
	slots := make([]slot, n)
	for i := range slots {
		start := i * dotsX / n
		end := (i + 1) * dotsX / n
		width := end - start
		center := start + width/2
		left := center - width/4
		right := center + width/4
		if right <= left {
			right = left + 1
		}
		slots[i] = slot{start: start, end: end, center: center, barLeft: left, barRight: right}
	}
	return slots
}

// PlotWidthFor computes a plot width that fits within the total available
// width once both axes are accounted for.
func PlotWidthFor(totalWidth int, counts []model.GroupCount) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	leftWidth := len(strconv.Itoa(MaxCount(counts)))
	axisWidth := leftWidth + 2*displayWidth(axisSeparator) + percentLabelWidth
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeCountLabels(height, maxCount int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = strconv.Itoa(maxCount)
	if height > 2 {
		labels[height/2] = strconv.Itoa(maxCount / 2)
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func makePercentLabels(height, refCell int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = fmt.Sprintf("%.0f%%", percentAxisMax)
	if height > 1 {
		labels[height-1] = "0%"
	}
	if refCell > 0 && refCell < height-1 {
		labels[refCell] = fmt.Sprintf("%.0f%%", DefaultThreshold)
	}
	return labels
}

func renderCategoryLabels(counts []model.GroupCount, slots []slot, width int) string {
	var b strings.Builder
	col := 0
	for i, c := range counts {
		cellStart := slots[i].start / 2
		cellEnd := slots[i].end / 2
		if cellEnd > width {
			cellEnd = width
		}
		label := truncateLabel(c.Name, cellEnd-cellStart)
		labelWidth := displayWidth(label)
		pos := slots[i].center/2 - labelWidth/2
		if pos < cellStart {
			pos = cellStart
		}
		if pos < col {
			pos = col
		}
		if pos > col {
			b.WriteString(strings.Repeat(" ", pos-col))
			col = pos
		}
		b.WriteString(label)
		col += labelWidth
	}
	return b.String()
}

func renderLegend(useColor bool) string {
	entries := []struct {
		layer int
		label string
	}{
		{layerBars, "Count"},
		{layerLine, "Cumulative Count"},
		{layerReference, fmt.Sprintf("%.0f%% reference (%s)", DefaultThreshold, dashedLine.name)},
	}
	parts := make([]string, 0, len(entries))
	marker := brailleFromMask(0xFF)
	for _, e := range entries {
		label := fmt.Sprintf("%c %s", marker, e.label)
		if useColor {
			label = layerColors[e.layer].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	layer := -1
	for i, cells := range layers {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if layer == -1 {
			layer = i
		}
		mask |= cellMask
	}
	return mask, layer
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 || maxVal <= minVal {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawMarker(cells [][]uint8, x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 && dy != 0 {
				continue
			}
			setBrailleDot(cells, x+dx, y+dy)
		}
	}
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
