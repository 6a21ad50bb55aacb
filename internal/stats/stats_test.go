package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/pareto/internal/generator"
	"github.com/verte-zerg/pareto/internal/model"
)

func TestGroupCountsAndOrder(t *testing.T) {
	samples := []string{"b", "a", "c", "a", "b", "a", "d"}
	desc := Group(samples, model.Descending)
	if len(desc) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(desc))
	}
	if desc[0].Name != "a" || desc[0].Count != 3 {
		t.Fatalf("expected a=3 first, got %+v", desc[0])
	}
	if Total(desc) != len(samples) {
		t.Fatalf("expected total %d, got %d", len(samples), Total(desc))
	}
	for i := 0; i+1 < len(desc); i++ {
		if desc[i].Count < desc[i+1].Count {
			t.Fatalf("descending order violated at %d: %+v", i, desc)
		}
	}

	asc := Group(samples, model.Ascending)
	for i := 0; i+1 < len(asc); i++ {
		if asc[i].Count > asc[i+1].Count {
			t.Fatalf("ascending order violated at %d: %+v", i, asc)
		}
	}
	if asc[len(asc)-1].Name != "a" {
		t.Fatalf("expected a last in ascending order, got %+v", asc)
	}
}

func TestGroupEmpty(t *testing.T) {
	out := Group(nil, model.Descending)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", out)
	}
}

func TestGroupIsStableAcrossRuns(t *testing.T) {
	samples := []string{"x", "y", "z", "y", "x", "w"}
	first := toMap(Group(samples, model.Descending))
	second := toMap(Group(samples, model.Descending))
	if len(first) != len(second) {
		t.Fatalf("group sizes differ: %v vs %v", first, second)
	}
	for name, count := range first {
		if second[name] != count {
			t.Fatalf("count for %q differs: %d vs %d", name, count, second[name])
		}
	}
}

func TestGroupSampledData(t *testing.T) {
	weights := []model.CategoryWeight{{Name: "A", Weight: 1}, {Name: "B", Weight: 5}, {Name: "C", Weight: 10}}
	samples, err := generator.New(2024).Sample(weights, 1600)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	counts := Group(samples, model.Descending)
	if len(counts) != 3 {
		t.Fatalf("expected 3 groups, got %+v", counts)
	}
	if counts[0].Name != "C" {
		t.Fatalf("expected C to be most frequent, got %+v", counts)
	}
	if Total(counts) != len(samples) {
		t.Fatalf("counts do not sum to sample size")
	}
	distinct := map[string]bool{}
	for _, s := range samples {
		distinct[s] = true
	}
	for _, c := range counts {
		if !distinct[c.Name] {
			t.Fatalf("unexpected group %q", c.Name)
		}
		delete(distinct, c.Name)
	}
	if len(distinct) != 0 {
		t.Fatalf("missing groups: %v", distinct)
	}
}

func TestCumulative(t *testing.T) {
	counts := []model.GroupCount{{Name: "a", Count: 5}, {Name: "b", Count: 3}, {Name: "c", Count: 2}}
	sums := Cumulative(counts)
	want := []int{5, 8, 10}
	for i := range want {
		if sums[i] != want[i] {
			t.Fatalf("expected cumulative %v, got %v", want, sums)
		}
	}
	pct := CumulativePercent(counts)
	if math.Abs(pct[0]-50) > 1e-9 || math.Abs(pct[1]-80) > 1e-9 {
		t.Fatalf("unexpected percentages: %v", pct)
	}
}

func TestCumulativePercentEndsAtHundred(t *testing.T) {
	cases := [][]model.GroupCount{
		{{Name: "a", Count: 1}},
		{{Name: "a", Count: 7}, {Name: "b", Count: 3}, {Name: "c", Count: 3}},
		{{Name: "a", Count: 333}, {Name: "b", Count: 333}, {Name: "c", Count: 334}, {Name: "d", Count: 1}},
	}
	for _, counts := range cases {
		pct := CumulativePercent(counts)
		last := pct[len(pct)-1]
		if math.Abs(last-100) > 1e-9 {
			t.Fatalf("expected final percentage 100, got %v for %+v", last, counts)
		}
	}
	if got := CumulativePercent(nil); len(got) != 0 {
		t.Fatalf("expected empty percentages, got %v", got)
	}
}

func toMap(counts []model.GroupCount) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Name] = c.Count
	}
	return out
}
