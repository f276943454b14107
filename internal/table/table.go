// Package table holds the in-memory tabular model shared by the loaders,
// the join/aggregate pipeline and the view layer.
package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Number
	Text
)

// Value is a single cell. The zero value is Null.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// NullValue returns a null cell.
func NullValue() Value { return Value{} }

// NumberValue returns a numeric cell. NaN and ±Inf have no JSON
// representation and become null.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: Number, num: f}
}

// TextValue returns a text cell.
func TextValue(s string) Value { return Value{kind: Text, str: s} }

// Parse converts a raw textual cell the way the CSV reader sees it:
// empty is null, anything strconv accepts as a finite float is a number,
// and "inf" or "nan" is null.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}
	}
	switch strings.ToLower(s) {
	case "nan", "null", "none":
		return Value{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(f)
	}
	return TextValue(raw)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsNumber() bool { return v.kind == Number }

// Float returns the numeric value and whether the cell is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Number
}

// String renders the value the way it is exported: null is empty,
// numbers use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Text:
		return v.str
	default:
		return ""
	}
}

// Equal compares two values by kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case Text:
		return v.str == o.str
	default:
		return true
	}
}

// Interface returns the value as nil, float64 or string, for JSON encoding.
func (v Value) Interface() any {
	switch v.kind {
	case Number:
		return v.num
	case Text:
		return v.str
	default:
		return nil
	}
}

// MarshalJSON encodes nulls as null, numbers as numbers and text as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case Text:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// Row is one record, positionally aligned with Table.Columns.
type Row []Value

// Table is an ordered set of named columns and rows.
// Tables are treated as immutable once built; every operation returns a new
// Table that may share Row slices with its input.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New creates a table with the given column names. Duplicate names are an error.
func New(columns []string) (*Table, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: idx}, nil
}

// MustNew is New for statically known column sets.
func MustNew(columns ...string) *Table {
	t, err := New(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// Append adds a row. The row length must match the column count.
func (t *Table) Append(r Row) error {
	if len(r) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(r), len(t.columns))
	}
	t.rows = append(t.rows, r)
	return nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns row i. It panics if i is out of range.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns the backing row slice; callers must not modify it.
func (t *Table) Rows() []Row { return t.rows }

// Has reports whether the table has a column with the given name.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// Get returns the value at (row, col). Unknown columns yield null.
func (t *Table) Get(row int, col string) Value {
	i, ok := t.index[col]
	if !ok {
		return Value{}
	}
	return t.rows[row][i]
}

// Record returns row i as a column -> value map.
func (t *Table) Record(i int) map[string]Value {
	rec := make(map[string]Value, len(t.columns))
	for c, name := range t.columns {
		rec[name] = t.rows[i][c]
	}
	return rec
}

// IsNumeric reports the global numeric classification of a column: every
// non-null value in the whole table is a number. An all-null column counts
// as numeric.
func (t *Table) IsNumeric(col string) bool {
	i, ok := t.index[col]
	if !ok {
		return false
	}
	for _, r := range t.rows {
		if r[i].kind == Text {
			return false
		}
	}
	return true
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.columns {
		if t.IsNumeric(c) {
			out = append(out, c)
		}
	}
	return out
}

// Filter returns a table holding the rows for which keep returns true,
// in their original order.
func (t *Table) Filter(keep func(r Row) bool) *Table {
	out := t.empty()
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// SortBy returns a table with the rows stably ordered by the numeric value
// of col, ascending. Rows where col is null or text go last, in their
// original order.
func (t *Table) SortBy(col string) *Table {
	out := t.empty()
	out.rows = slices.Clone(t.rows)
	i, ok := t.index[col]
	if !ok {
		return out
	}
	slices.SortStableFunc(out.rows, func(a, b Row) int {
		x, okA := a[i].Float()
		y, okB := b[i].Float()
		switch {
		case okA && okB:
			return cmp.Compare(x, y)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Slice returns rows [start, end), clamped to the table bounds.
func (t *Table) Slice(start, end int) *Table {
	out := t.empty()
	if start < 0 {
		start = 0
	}
	if end > len(t.rows) {
		end = len(t.rows)
	}
	if start < end {
		out.rows = t.rows[start:end:end]
	}
	return out
}

// Select returns a table with only the named columns, in the given order.
// Unknown and repeated names are skipped.
func (t *Table) Select(cols ...string) *Table {
	var keep []string
	var pos []int
	picked := make(map[string]bool, len(cols))
	for _, c := range cols {
		if picked[c] {
			continue
		}
		if i, ok := t.index[c]; ok {
			picked[c] = true
			keep = append(keep, c)
			pos = append(pos, i)
		}
	}
	out := MustNew(keep...)
	for _, r := range t.rows {
		nr := make(Row, len(pos))
		for j, p := range pos {
			nr[j] = r[p]
		}
		out.rows = append(out.rows, nr)
	}
	return out
}

// Rename returns a table whose columns are renamed by fn. Row data is shared.
func (t *Table) Rename(fn func(string) string) (*Table, error) {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = fn(c)
	}
	out, err := New(names)
	if err != nil {
		return nil, err
	}
	out.rows = t.rows
	return out, nil
}

// Distinct returns the distinct non-null text renderings of col, in first-seen order.
func (t *Table) Distinct(col string) []string {
	i, ok := t.index[col]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		v := r[i]
		if v.IsNull() {
			continue
		}
		s := v.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// MinMax returns the smallest and largest numeric value of col.
// ok is false when the column has no numbers.
func (t *Table) MinMax(col string) (lo, hi float64, ok bool) {
	i, found := t.index[col]
	if !found {
		return 0, 0, false
	}
	for _, r := range t.rows {
		f, isNum := r[i].Float()
		if !isNum {
			continue
		}
		if !ok {
			lo, hi, ok = f, f, true
			continue
		}
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return lo, hi, ok
}

// Mean returns the mean of the numeric values of col, skipping nulls.
func (t *Table) Mean(col string) (float64, bool) {
	i, found := t.index[col]
	if !found {
		return 0, false
	}
	var sum float64
	var n int
	for _, r := range t.rows {
		if f, ok := r[i].Float(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (t *Table) empty() *Table {
	return &Table{columns: t.columns, index: t.index}
}
