package dataset

import (
	"errors"
	"fmt"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// Suffixes appended to overlapping non-key column names by LeftJoin.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Key identifies one document in one discipline.
type Key struct {
	Filename   string `json:"filename"`
	Discipline string `json:"discipline"`
}

func (k Key) String() string { return k.Filename + " (" + k.Discipline + ")" }

// JoinReport summarizes how score rows matched metadata rows.
type JoinReport struct {
	Rows      int `json:"rows"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	// UnmatchedKeys lists each distinct score key without metadata, in first-seen order.
	UnmatchedKeys []Key `json:"unmatched_keys,omitempty"`
	// DuplicateKeys lists metadata keys that occur on more than one row.
	// The first row for such a key is used.
	DuplicateKeys []Key `json:"duplicate_keys,omitempty"`
}

// keyOf reads the join key of row r. ok is false when either part is null.
func keyOf(r table.Row, fi, di int) (Key, bool) {
	f, d := r[fi], r[di]
	if f.IsNull() || d.IsNull() {
		return Key{}, false
	}
	return Key{Filename: f.String(), Discipline: d.String()}, true
}

// LeftJoin joins every score row to the metadata row with the same
// (filename, discipline). Score rows without a match keep null metadata
// fields, and the output always has exactly scores.Len() rows.
func LeftJoin(scores, meta *table.Table) (*table.Table, JoinReport, error) {
	var report JoinReport
	if scores == nil || meta == nil {
		return nil, report, errors.New("join requires both tables")
	}
	for _, t := range []*table.Table{scores, meta} {
		for _, col := range []string{schema.ColFilename, schema.ColDiscipline} {
			if !t.Has(col) {
				return nil, report, fmt.Errorf("join: missing key column %q", col)
			}
		}
	}

	isKey := func(c string) bool { return c == schema.ColFilename || c == schema.ColDiscipline }

	leftCols := scores.Columns()
	rightCols := meta.Columns()
	overlap := make(map[string]bool)
	for _, c := range rightCols {
		if !isKey(c) && scores.Has(c) {
			overlap[c] = true
		}
	}

	var cols []string
	for _, c := range leftCols {
		if overlap[c] {
			c += LeftSuffix
		}
		cols = append(cols, c)
	}
	var rightPos []int
	for i, c := range rightCols {
		if isKey(c) {
			continue
		}
		if overlap[c] {
			c += RightSuffix
		}
		cols = append(cols, c)
		rightPos = append(rightPos, i)
	}
	out, err := table.New(cols)
	if err != nil {
		return nil, report, fmt.Errorf("join: %w", err)
	}

	mfi, mdi := meta.Index(schema.ColFilename), meta.Index(schema.ColDiscipline)
	lookup := make(map[Key]table.Row, meta.Len())
	flagged := make(map[Key]bool)
	for _, r := range meta.Rows() {
		k, ok := keyOf(r, mfi, mdi)
		if !ok {
			continue
		}
		if _, dup := lookup[k]; dup {
			if !flagged[k] {
				flagged[k] = true
				report.DuplicateKeys = append(report.DuplicateKeys, k)
			}
			continue
		}
		lookup[k] = r
	}

	sfi, sdi := scores.Index(schema.ColFilename), scores.Index(schema.ColDiscipline)
	missed := make(map[Key]bool)
	for _, r := range scores.Rows() {
		row := make(table.Row, 0, len(cols))
		row = append(row, r...)

		k, ok := keyOf(r, sfi, sdi)
		m, found := lookup[k]
		if ok && found {
			report.Matched++
			for _, p := range rightPos {
				row = append(row, m[p])
			}
		} else {
			report.Unmatched++
			if !missed[k] {
				missed[k] = true
				report.UnmatchedKeys = append(report.UnmatchedKeys, k)
			}
			for range rightPos {
				row = append(row, table.NullValue())
			}
		}
		if err := out.Append(row); err != nil {
			return nil, report, err
		}
	}
	report.Rows = out.Len()
	return out, report, nil
}
