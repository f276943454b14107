package stats

import (
	"math"
	"testing"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

func pages(t *testing.T) *table.Table {
	t.Helper()
	tb := table.MustNew("Filename", "Discipline", "Page Number", "Overall Score Pymupdf", "Overall Score Marker")
	add := func(f, d string, page float64, a, b table.Value) {
		if err := tb.Append(table.Row{table.TextValue(f), table.TextValue(d), table.NumberValue(page), a, b}); err != nil {
			t.Fatal(err)
		}
	}
	n := table.NumberValue
	for i := 0; i < 5; i++ {
		add("extracted_a", "History", 1, n(0.2), n(1.0))
	}
	add("extracted_b", "Law", 1, n(0.6), table.NullValue())
	add("extracted_b", "Law", 2, n(0.4), n(0.5))
	add("extracted_c", "Law", 2, table.NullValue(), n(0))
	return tb
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarize(t *testing.T) {
	s := Summarize(pages(t), "Overall Score Pymupdf")
	if s.Rows != 8 || s.Documents != 3 || s.Disciplines != 2 {
		t.Errorf("summary = %+v", s)
	}
	if s.AverageScore == nil || !near(*s.AverageScore, 2.0/7) {
		t.Errorf("average = %v, want %v", s.AverageScore, 2.0/7)
	}

	empty := Summarize(table.MustNew("Filename", "Overall Score Pymupdf"), "Overall Score Pymupdf")
	if empty.AverageScore != nil || empty.Rows != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestHistograms(t *testing.T) {
	hs := Histograms(pages(t), schema.Default(), 0)
	if len(hs) != 2 {
		t.Fatalf("histograms = %d, want 2 (mineru column absent)", len(hs))
	}
	mu := hs[0]
	if mu.Tool != "Pymupdf" || mu.Count != 7 || len(mu.Bins) != HistogramBins {
		t.Errorf("pymupdf histogram = %+v", mu)
	}
	if mu.Bins[4].Count != 5 {
		t.Errorf("bin [0.2, 0.25) = %d, want 5", mu.Bins[4].Count)
	}

	marker := hs[1]
	if marker.Bins[HistogramBins-1].Count != 5 {
		t.Errorf("score 1.0 should land in the last bin, got %d", marker.Bins[HistogramBins-1].Count)
	}
	if marker.Bins[0].Count != 1 || marker.Bins[10].Count != 1 {
		t.Errorf("marker bins 0 and 10 = %d, %d", marker.Bins[0].Count, marker.Bins[10].Count)
	}
}

func TestByDiscipline(t *testing.T) {
	got := ByDiscipline(pages(t), "Overall Score Pymupdf")
	if len(got) != 2 || got[0].Key != "History" || got[1].Key != "Law" {
		t.Fatalf("groups = %+v", got)
	}
	if got[0].Count != 5 || !near(*got[0].Mean, 0.2) {
		t.Errorf("History = %+v", got[0])
	}
	if got[1].Count != 2 || !near(*got[1].Mean, 0.5) {
		t.Errorf("Law = %+v", got[1])
	}
}

func TestByPageNumber(t *testing.T) {
	got := ByPageNumber(pages(t), "Page Number", "Overall Score Pymupdf", MinPageNumberRows)
	if len(got) != 1 {
		t.Fatalf("pages = %+v, want only page 1", got)
	}
	if got[0].PageNumber != 1 || got[0].Count != 6 || !near(got[0].Mean, 1.6/6) {
		t.Errorf("page 1 = %+v", got[0])
	}

	all := ByPageNumber(pages(t), "Page Number", "Overall Score Pymupdf", 1)
	if len(all) != 2 || all[1].PageNumber != 2 || all[1].Count != 1 {
		t.Errorf("all pages = %+v", all)
	}
}

func TestCompare(t *testing.T) {
	sch := schema.Default()
	row := map[string]table.Value{
		"Overall Score Pymupdf":         table.NumberValue(0.8),
		"Word Count Pymupdf":            table.NumberValue(1200),
		"Perplexity Marker":             table.NumberValue(31.5),
		"Line Continuity Score Pymupdf": table.NumberValue(0.9),
		"Title":                         table.TextValue("ignored"),
		"Overall Score Mineru":          table.TextValue("n/a"),
	}
	c := Compare(row, sch)

	if len(c.Tools) != 3 || c.Tools[0].Tool != "Pymupdf" {
		t.Fatalf("tools = %+v", c.Tools)
	}
	if c.Tools[0].OverallScore == nil || *c.Tools[0].OverallScore != 0.8 || *c.Tools[0].WordCount != 1200 {
		t.Errorf("pymupdf = %+v", c.Tools[0])
	}
	if c.Tools[0].Perplexity != nil || c.Tools[1].Perplexity == nil || *c.Tools[1].Perplexity != 31.5 {
		t.Errorf("perplexity = %v, %v", c.Tools[0].Perplexity, c.Tools[1].Perplexity)
	}
	if c.Tools[2].OverallScore != nil {
		t.Error("text value should not count as a score")
	}

	b := c.Breakdown[0]
	if len(b.Dimensions) != 5 || b.Dimensions[0].Dimension != "Line Continuity" || *b.Dimensions[0].Score != 0.9 {
		t.Errorf("breakdown = %+v", b)
	}
	if b.Dimensions[1].Score != nil {
		t.Error("missing dimension should be nil")
	}
}
