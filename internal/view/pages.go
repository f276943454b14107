package view

import (
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// PageState is the page explorer state. It filters the page table on its own,
// without going through the document aggregate.
type PageState struct {
	Discipline string   `json:"discipline,omitempty"`
	PageMin    *float64 `json:"page_min,omitempty"`
	PageMax    *float64 `json:"page_max,omitempty"`
	// MinOverall keeps pages where any tool's overall score reaches it.
	MinOverall *float64 `json:"min_overall,omitempty"`
	MinWords   float64  `json:"min_words,omitempty"`
	Search     string   `json:"search,omitempty"`
	Page       int      `json:"page,omitempty"`
	PageSize   int      `json:"page_size,omitempty"`
	Columns    []string `json:"columns,omitempty"`
}

// PageIndexColumn returns the page index display column of t, preferring
// "Page Number" over the legacy "Page Num". It is empty when t has neither.
func PageIndexColumn(t *table.Table) string {
	switch {
	case t.Has(schema.PageNumber):
		return schema.PageNumber
	case t.Has(schema.PageNum):
		return schema.PageNum
	default:
		return ""
	}
}

// ApplyPages filters the page table in order: discipline, page number range,
// minimum overall score on any tool, minimum word count on any tool,
// filename search.
func ApplyPages(pages *table.Table, s PageState, sch schema.Schema) (*table.Table, error) {
	out := pages

	if d := s.Discipline; d != "" && d != All && pages.Has(schema.Discipline) {
		out = out.Filter(textEquals(pages, schema.Discipline, d))
	}

	if col := PageIndexColumn(pages); col != "" && (s.PageMin != nil || s.PageMax != nil) {
		lo, hi, err := bounds(s.PageMin, s.PageMax)
		if err != nil {
			return nil, err
		}
		out = out.Filter(inRange(pages, col, lo, hi))
	}

	if s.MinOverall != nil {
		if cols := present(pages, sch.OverallColumns()); len(cols) > 0 {
			out = out.Filter(anyAtLeast(pages, cols, *s.MinOverall))
		}
	}

	if s.MinWords > 0 {
		if cols := present(pages, sch.WordCountColumns()); len(cols) > 0 {
			out = out.Filter(anyAtLeast(pages, cols, s.MinWords))
		}
	}

	if s.Search != "" && pages.Has(schema.Filename) {
		out = out.Filter(contains(pages, schema.Filename, s.Search))
	}
	return out, nil
}

// DocumentPages returns the page rows of one document ordered by page
// number, with the page index, the declared score columns and the word
// count columns.
func DocumentPages(pages *table.Table, filename string, sch schema.Schema) *table.Table {
	rows := pages.Filter(textEquals(pages, schema.Filename, filename))
	var cols []string
	if pc := PageIndexColumn(pages); pc != "" {
		rows = rows.SortBy(pc)
		cols = append(cols, pc)
	}
	cols = append(cols, present(pages, sch.ScoreColumns())...)
	cols = append(cols, present(pages, sch.WordCountColumns())...)
	return rows.Select(cols...)
}
