// Package view applies user filters to the document and page tables and
// keeps the two consistent: every filter on the document table also
// restricts the page table to the documents that survive it.
//
// All functions are pure. View state is passed in explicitly and the input
// tables are never modified.
package view

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// All selects every discipline.
const All = "All"

var (
	// ErrUnknownColumn is returned when a state names a column the table lacks.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInvalidRange is returned when a range has low > high.
	ErrInvalidRange = errors.New("invalid range")
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// State is the document view state.
type State struct {
	Discipline  string   `json:"discipline,omitempty"`
	ScoreColumn string   `json:"score_column,omitempty"`
	ScoreMin    *float64 `json:"score_min,omitempty"`
	ScoreMax    *float64 `json:"score_max,omitempty"`
	MinWords    float64  `json:"min_words,omitempty"`
	Search      string   `json:"search,omitempty"`
	Page        int      `json:"page,omitempty"`
	PageSize    int      `json:"page_size,omitempty"`
	Columns     []string `json:"columns,omitempty"`
}

// Result is a filtered document view with its linked page table.
type Result struct {
	Aggregate   *table.Table
	Pages       *table.Table
	ScoreColumn string
}

// Apply filters the aggregate in a fixed order: discipline, score range,
// word count, filename search. After each step the page table is
// restricted to the filenames still present in the aggregate.
func Apply(agg, pages *table.Table, s State, sch schema.Schema) (*Result, error) {
	res := &Result{Aggregate: agg, Pages: pages}

	if d := s.Discipline; d != "" && d != All && agg.Has(schema.Discipline) {
		res.Aggregate = res.Aggregate.Filter(textEquals(agg, schema.Discipline, d))
		if pages.Has(schema.Discipline) {
			res.Pages = res.Pages.Filter(textEquals(pages, schema.Discipline, d))
		}
		res.restrictPages()
	}

	col, err := ResolveScoreColumn(agg, s.ScoreColumn, sch)
	if err != nil {
		return nil, err
	}
	res.ScoreColumn = col
	if col != "" {
		lo, hi, err := bounds(s.ScoreMin, s.ScoreMax)
		if err != nil {
			return nil, err
		}
		res.Aggregate = res.Aggregate.Filter(inRange(agg, col, lo, hi))
		res.restrictPages()
	}

	if s.MinWords > 0 {
		if cols := present(agg, sch.WordCountColumns()); len(cols) > 0 {
			res.Aggregate = res.Aggregate.Filter(anyAtLeast(agg, cols, s.MinWords))
			res.restrictPages()
		}
	}

	if s.Search != "" && agg.Has(schema.Filename) {
		res.Aggregate = res.Aggregate.Filter(contains(agg, schema.Filename, s.Search))
		res.restrictPages()
	}
	return res, nil
}

// restrictPages keeps only page rows whose filename is in the aggregate.
func (r *Result) restrictPages() {
	r.Pages = RestrictTo(r.Pages, r.Aggregate)
}

// RestrictTo returns the rows of pages whose filename occurs in docs.
func RestrictTo(pages, docs *table.Table) *table.Table {
	pi := pages.Index(schema.Filename)
	if pi < 0 {
		return pages
	}
	keep := make(map[string]bool, docs.Len())
	if di := docs.Index(schema.Filename); di >= 0 {
		for _, r := range docs.Rows() {
			if !r[di].IsNull() {
				keep[r[di].String()] = true
			}
		}
	}
	return pages.Filter(func(r table.Row) bool {
		return !r[pi].IsNull() && keep[r[pi].String()]
	})
}

// ResolveScoreColumn returns the score column to filter on. An empty
// request picks the schema's default score column when the table has it,
// then the first declared score column present. Naming a column that is
// not a numeric column of the table is an error.
func ResolveScoreColumn(t *table.Table, requested string, sch schema.Schema) (string, error) {
	if requested != "" {
		if !t.Has(requested) || !t.IsNumeric(requested) {
			return "", fmt.Errorf("%w: %q is not a numeric column", ErrUnknownColumn, requested)
		}
		return requested, nil
	}
	cols := ScoreColumns(t, sch)
	def := sch.DefaultScoreColumn()
	for _, c := range cols {
		if c == def {
			return c, nil
		}
	}
	if len(cols) > 0 {
		return cols[0], nil
	}
	return "", nil
}

// ScoreColumns returns the declared score columns present and numeric in t.
func ScoreColumns(t *table.Table, sch schema.Schema) []string {
	var out []string
	for _, c := range sch.ScoreColumns() {
		if t.Has(c) && t.IsNumeric(c) {
			out = append(out, c)
		}
	}
	return out
}

func bounds(lo, hi *float64) (float64, float64, error) {
	l, h := negInf, posInf
	if lo != nil {
		l = *lo
	}
	if hi != nil {
		h = *hi
	}
	if l > h {
		return 0, 0, fmt.Errorf("%w: %v > %v", ErrInvalidRange, l, h)
	}
	return l, h, nil
}

func present(t *table.Table, cols []string) []string {
	var out []string
	for _, c := range cols {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Row predicates. Each resolves column positions against the table the
// rows come from; filtered tables share their source's column layout.

func textEquals(t *table.Table, col, want string) func(table.Row) bool {
	i := t.Index(col)
	return func(r table.Row) bool {
		return i >= 0 && !r[i].IsNull() && r[i].String() == want
	}
}

func inRange(t *table.Table, col string, lo, hi float64) func(table.Row) bool {
	i := t.Index(col)
	return func(r table.Row) bool {
		if i < 0 {
			return false
		}
		f, ok := r[i].Float()
		return ok && f >= lo && f <= hi
	}
}

func anyAtLeast(t *table.Table, cols []string, threshold float64) func(table.Row) bool {
	idx := make([]int, 0, len(cols))
	for _, c := range cols {
		if i := t.Index(c); i >= 0 {
			idx = append(idx, i)
		}
	}
	return func(r table.Row) bool {
		for _, i := range idx {
			if f, ok := r[i].Float(); ok && f >= threshold {
				return true
			}
		}
		return false
	}
}

func contains(t *table.Table, col, query string) func(table.Row) bool {
	i := t.Index(col)
	q := strings.ToLower(query)
	return func(r table.Row) bool {
		if i < 0 || r[i].IsNull() {
			return false
		}
		return strings.Contains(strings.ToLower(r[i].String()), q)
	}
}
