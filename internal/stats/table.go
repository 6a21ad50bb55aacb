// Package stats contains frequency aggregation and chart rendering.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable prints the grouped counts with their cumulative series.
func RenderTable(w io.Writer, r Report) error {
	if len(r.Counts) == 0 {
		_, err := fmt.Fprintln(w, "No samples.")
		return err
	}
	headers := []string{"Category", "Count", "Cumulative", "Cumulative %"}
	rows := make([][]string, 0, len(r.Counts))
	for i, c := range r.Counts {
		rows = append(rows, []string{
			c.Name,
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%d", r.Cumulative[i]),
			fmt.Sprintf("%.2f%%", r.Percent[i]),
		})
	}
	for _, line := range formatTable(headers, rows, []bool{false, true, true, true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Total: %d\n", r.Total); err != nil {
		return err
	}
	return nil
}

// RenderVitalFew prints the categories that make up the threshold share.
func RenderVitalFew(w io.Writer, r Report) error {
	if len(r.VitalFew) == 0 {
		return nil
	}
	names := make([]string, len(r.VitalFew))
	for i, c := range r.VitalFew {
		names[i] = c.Name
	}
	_, err := fmt.Fprintf(w, "%d of %d categories reach %.0f%%: %s\n",
		len(r.VitalFew), len(r.Counts), DefaultThreshold, strings.Join(names, ", "))
	return err
}

func formatTable(headers []string, rows [][]string, rightAlign []bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlign))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign []bool) string {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		right := i < len(rightAlign) && rightAlign[i]
		cells[i] = padCell(cell, widths[i], right)
	}
	return strings.Join(cells, " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

func truncateLabel(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(value, width, "")
}
