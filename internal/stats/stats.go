// Package stats computes the summary figures and chart series shown next to
// the filtered tables.
package stats

import (
	"math"
	"sort"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// Defaults of the chart series.
const (
	HistogramBins     = 20
	HistogramTools    = 3
	MinPageNumberRows = 5
)

// Summary holds the headline numbers of a filtered table.
type Summary struct {
	Rows         int      `json:"rows"`
	Documents    int      `json:"documents"`
	Disciplines  int      `json:"disciplines"`
	ScoreColumn  string   `json:"score_column,omitempty"`
	AverageScore *float64 `json:"average_score,omitempty"`
}

// Summarize counts rows, distinct documents and disciplines, and averages
// scoreCol over its non-null values.
func Summarize(t *table.Table, scoreCol string) Summary {
	s := Summary{
		Rows:        t.Len(),
		Documents:   len(t.Distinct(schema.Filename)),
		Disciplines: len(t.Distinct(schema.Discipline)),
		ScoreColumn: scoreCol,
	}
	if scoreCol != "" {
		if m, ok := t.Mean(scoreCol); ok {
			s.AverageScore = &m
		}
	}
	return s
}

// Bin is one histogram bucket covering [Low, High); the last bin also
// includes High.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram is the distribution of one score column.
type Histogram struct {
	Column string `json:"column"`
	Tool   string `json:"tool"`
	Count  int    `json:"count"`
	Bins   []Bin  `json:"bins"`
}

// Histograms bins the overall score of the first HistogramTools tools
// present in t into n equal-width bins over [0, 1]. Values outside the
// range are clamped into the edge bins.
func Histograms(t *table.Table, sch schema.Schema, n int) []Histogram {
	if n <= 0 {
		n = HistogramBins
	}
	var out []Histogram
	for _, tool := range sch.Tools {
		if len(out) == HistogramTools {
			break
		}
		col := sch.Column(tool, schema.OverallScore)
		i := t.Index(col)
		if i < 0 {
			continue
		}
		h := Histogram{Column: col, Tool: schema.ToolLabel(tool), Bins: make([]Bin, n)}
		width := 1.0 / float64(n)
		for b := range h.Bins {
			h.Bins[b] = Bin{Low: float64(b) * width, High: float64(b+1) * width}
		}
		for _, r := range t.Rows() {
			f, ok := r[i].Float()
			if !ok || math.IsNaN(f) {
				continue
			}
			b := int(math.Floor(f * float64(n)))
			if b < 0 {
				b = 0
			}
			if b >= n {
				b = n - 1
			}
			h.Bins[b].Count++
			h.Count++
		}
		out = append(out, h)
	}
	return out
}

// GroupMean is the mean of a score column within one group.
type GroupMean struct {
	Key   string   `json:"key"`
	Mean  *float64 `json:"mean"`
	Count int      `json:"count"`
}

// ByDiscipline averages col per discipline, sorted by discipline.
// Count is the number of non-null values averaged.
func ByDiscipline(t *table.Table, col string) []GroupMean {
	di, ci := t.Index(schema.Discipline), t.Index(col)
	if di < 0 || ci < 0 {
		return nil
	}
	acc := make(map[string]*accumulator)
	for _, r := range t.Rows() {
		if r[di].IsNull() {
			continue
		}
		k := r[di].String()
		a, ok := acc[k]
		if !ok {
			a = &accumulator{}
			acc[k] = a
		}
		a.add(r[ci])
	}

	out := make([]GroupMean, 0, len(acc))
	for k, a := range acc {
		out = append(out, GroupMean{Key: k, Mean: a.mean(), Count: a.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// PageMean is the mean of a score column at one page number.
type PageMean struct {
	PageNumber float64 `json:"page_number"`
	Mean       float64 `json:"mean"`
	Count      int     `json:"count"`
}

// ByPageNumber averages col per page number over the page table, keeping
// page numbers with at least minCount values, sorted by page number.
func ByPageNumber(t *table.Table, pageCol, col string, minCount int) []PageMean {
	pi, ci := t.Index(pageCol), t.Index(col)
	if pi < 0 || ci < 0 {
		return nil
	}
	acc := make(map[float64]*accumulator)
	for _, r := range t.Rows() {
		p, ok := r[pi].Float()
		if !ok {
			continue
		}
		a, seen := acc[p]
		if !seen {
			a = &accumulator{}
			acc[p] = a
		}
		a.add(r[ci])
	}

	var out []PageMean
	for p, a := range acc {
		if a.n < minCount || a.n == 0 {
			continue
		}
		out = append(out, PageMean{PageNumber: p, Mean: a.sum / float64(a.n), Count: a.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })
	return out
}

type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v table.Value) {
	if f, ok := v.Float(); ok {
		a.sum += f
		a.n++
	}
}

func (a *accumulator) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}
