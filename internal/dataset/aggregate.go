package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// AggregateOptions controls how non-numeric columns are collapsed.
type AggregateOptions struct {
	// Constant names the non-numeric columns that are assumed to hold the
	// same value on every page of a document. Empty means every
	// non-numeric column is assumed constant.
	Constant []string
	// Validate checks the constancy assumption and records disagreeing
	// groups in the report.
	Validate bool
}

// Conflict is one group whose pages disagree on a column assumed constant.
type Conflict struct {
	Key    Key      `json:"key"`
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// AggregateReport describes the aggregation result.
type AggregateReport struct {
	Groups int `json:"groups"`
	// DroppedRows counts input rows with a null filename or discipline.
	DroppedRows int `json:"dropped_rows,omitempty"`
	// Numeric and Text list the columns averaged and taken first.
	Numeric []string `json:"numeric"`
	Text    []string `json:"text"`
	// Undeclared lists non-numeric columns not named in AggregateOptions.Constant.
	Undeclared []string   `json:"undeclared,omitempty"`
	Conflicts  []Conflict `json:"conflicts,omitempty"`
}

type group struct {
	key  Key
	rows []table.Row
}

// Aggregate collapses the joined page table to one row per
// (filename, discipline), in ascending key order. Numeric columns are
// averaged over non-null values; every other column takes its first
// non-null value. Page index columns are dropped. Output columns are the
// keys, then numeric columns, then the rest, each in input order.
func Aggregate(joined *table.Table, opts AggregateOptions) (*table.Table, AggregateReport, error) {
	var report AggregateReport
	if joined == nil {
		return nil, report, errors.New("aggregate requires a table")
	}
	fi, di := joined.Index(schema.ColFilename), joined.Index(schema.ColDiscipline)
	if fi < 0 || di < 0 {
		return nil, report, fmt.Errorf("aggregate: missing key columns %q and %q", schema.ColFilename, schema.ColDiscipline)
	}

	for _, c := range joined.Columns() {
		if c == schema.ColFilename || c == schema.ColDiscipline || schema.IsPageIndex(c) {
			continue
		}
		if joined.IsNumeric(c) {
			report.Numeric = append(report.Numeric, c)
		} else {
			report.Text = append(report.Text, c)
		}
	}

	constant := make(map[string]bool)
	if len(opts.Constant) == 0 {
		for _, c := range report.Text {
			constant[c] = true
		}
	} else {
		for _, c := range opts.Constant {
			constant[c] = true
		}
		for _, c := range report.Text {
			if !constant[c] {
				report.Undeclared = append(report.Undeclared, c)
			}
		}
	}

	groups := make(map[Key]*group)
	var order []*group
	for _, r := range joined.Rows() {
		k, ok := keyOf(r, fi, di)
		if !ok {
			report.DroppedRows++
			continue
		}
		g, seen := groups[k]
		if !seen {
			g = &group{key: k}
			groups[k] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, r)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i].key, order[j].key
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Discipline < b.Discipline
	})

	cols := append([]string{schema.ColFilename, schema.ColDiscipline}, report.Numeric...)
	cols = append(cols, report.Text...)
	out, err := table.New(cols)
	if err != nil {
		return nil, report, fmt.Errorf("aggregate: %w", err)
	}

	numPos := positions(joined, report.Numeric)
	textPos := positions(joined, report.Text)
	for _, g := range order {
		row := make(table.Row, 0, len(cols))
		row = append(row, table.TextValue(g.key.Filename), table.TextValue(g.key.Discipline))
		for _, p := range numPos {
			row = append(row, mean(g.rows, p))
		}
		for j, p := range textPos {
			row = append(row, first(g.rows, p))
			col := report.Text[j]
			if opts.Validate && constant[col] {
				if vals := distinct(g.rows, p); len(vals) > 1 {
					report.Conflicts = append(report.Conflicts, Conflict{Key: g.key, Column: col, Values: vals})
				}
			}
		}
		if err := out.Append(row); err != nil {
			return nil, report, err
		}
	}
	report.Groups = out.Len()
	return out, report, nil
}

func positions(t *table.Table, cols []string) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = t.Index(c)
	}
	return out
}

func mean(rows []table.Row, p int) table.Value {
	var sum float64
	var n int
	for _, r := range rows {
		if f, ok := r[p].Float(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return table.NullValue()
	}
	return table.NumberValue(sum / float64(n))
}

func first(rows []table.Row, p int) table.Value {
	for _, r := range rows {
		if !r[p].IsNull() {
			return r[p]
		}
	}
	return table.NullValue()
}

func distinct(rows []table.Row, p int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if r[p].IsNull() {
			continue
		}
		s := r[p].String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
