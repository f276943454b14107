package view

import (
	"sort"
	"strings"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Options lists the choices a client needs to build filter controls.
type Options struct {
	Disciplines        []string         `json:"disciplines"`
	ScoreColumns       []string         `json:"score_columns"`
	DefaultScoreColumn string           `json:"default_score_column,omitempty"`
	ScoreRanges        map[string]Range `json:"score_ranges"`
	WordCountColumns   []string         `json:"word_count_columns"`
	PageRange          *Range           `json:"page_range,omitempty"`
	PageSizes          []int            `json:"page_sizes"`
	DefaultPageSize    int              `json:"default_page_size"`
	Columns            []string         `json:"columns"`
	DefaultColumns     []string         `json:"default_columns"`
	Tools              []string         `json:"tools"`
}

// BuildOptions derives the filter choices of the document view from the
// aggregate and of the page explorer from the page table.
func BuildOptions(agg, pages *table.Table, sch schema.Schema) Options {
	opts := Options{
		Disciplines:      Disciplines(agg),
		ScoreColumns:     ScoreColumns(agg, sch),
		ScoreRanges:      make(map[string]Range),
		WordCountColumns: present(agg, sch.WordCountColumns()),
		PageSizes:        append([]int(nil), PageSizes...),
		DefaultPageSize:  DefaultPageSize,
		Columns:          agg.Columns(),
		DefaultColumns:   DefaultColumns(agg.Columns(), DocumentPriority),
		Tools:            append([]string(nil), sch.Tools...),
	}
	opts.DefaultScoreColumn, _ = ResolveScoreColumn(agg, "", sch)
	for _, c := range opts.ScoreColumns {
		if lo, hi, ok := agg.MinMax(c); ok {
			opts.ScoreRanges[c] = Range{Min: lo, Max: hi}
		}
	}
	if pc := PageIndexColumn(pages); pc != "" {
		if lo, hi, ok := pages.MinMax(pc); ok {
			opts.PageRange = &Range{Min: lo, Max: hi}
		}
	}
	return opts
}

// Disciplines returns the sorted distinct disciplines of t.
func Disciplines(t *table.Table) []string {
	out := t.Distinct(schema.Discipline)
	sort.Strings(out)
	return out
}

// Columns shown first when the client does not pick any.
var (
	DocumentPriority = []string{
		"Filename", "Discipline", "Overall Score", "Word Count",
		"Title", "Abstract", "Authors", "Id Openalex",
	}
	PagePriority = []string{
		"Filename", "Page Number", "Page Num", "Discipline",
		"Overall Score", "Word Count", "Title", "Abstract",
	}
)

// defaultColumnCount is how many columns DefaultColumns fills up to.
const defaultColumnCount = 8

// DefaultColumns picks the columns shown by default: the priority columns
// that exist, then every overall score column, then the remaining columns
// in table order until there are eight.
func DefaultColumns(available, priority []string) []string {
	has := make(map[string]bool, len(available))
	for _, c := range available {
		has[c] = true
	}
	picked := make(map[string]bool)
	var out []string
	add := func(c string) {
		if !picked[c] {
			picked[c] = true
			out = append(out, c)
		}
	}
	for _, c := range priority {
		if has[c] {
			add(c)
		}
	}
	for _, c := range available {
		if strings.Contains(c, "Overall") && strings.Contains(c, "Score") {
			add(c)
		}
	}
	for _, c := range available {
		if len(out) >= defaultColumnCount {
			break
		}
		add(c)
	}
	return out
}

// Project returns t restricted to cols, or to the default columns when
// cols is empty. Unknown names are ignored.
func Project(t *table.Table, cols, priority []string) *table.Table {
	if len(cols) == 0 {
		cols = DefaultColumns(t.Columns(), priority)
	}
	return t.Select(cols...)
}
