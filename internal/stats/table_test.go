package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/pareto/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Category", "Count", "Cumulative %"}
	rows := [][]string{
		{"A", "600", "60.00%"},
		{"Widgets", "50", "100.00%"},
	}

	lines := formatTable(headers, rows, []bool{false, true, true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Category Count Cumulative %" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "A          600       60.00%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Widgets     50      100.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderTable(t *testing.T) {
	report := ReportFor([]model.GroupCount{{Name: "A", Count: 8}, {Name: "B", Count: 2}})
	var buf bytes.Buffer
	if err := RenderTable(&buf, report); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Category", "Cumulative %", "80.00%", "100.00%", "Total: 10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	buf.Reset()
	if err := RenderVitalFew(&buf, report); err != nil {
		t.Fatalf("RenderVitalFew failed: %v", err)
	}
	if !strings.Contains(buf.String(), "1 of 2 categories reach 80%: A") {
		t.Fatalf("unexpected vital few line: %q", buf.String())
	}
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, Report{}); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No samples." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
