// Package export writes filtered tables as CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/odoma/benchdash/internal/table"
)

// File name prefixes of the two exports.
const (
	DocumentsPrefix = "filtered_results"
	PagesPrefix     = "filtered_page_results"
)

// ContentType is the media type of exported files.
const ContentType = "text/csv; charset=utf-8"

// Filename returns the download name for an export taken at now,
// e.g. "filtered_results_20240131_154500.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102_150405"))
}

// WriteCSV writes t with a header row of its column names followed by one
// record per row. Nulls are written as empty fields and numbers in their
// shortest round-tripping form. Quoting follows RFC 4180.
//
// CSV carries no cell types: text is written verbatim, so a text cell that
// looks like a number ("2020") or a null marker ("None") is read back by
// table.Parse as a number or a null.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	rec := make([]string, len(t.Columns()))
	for i, r := range t.Rows() {
		for j, v := range r {
			rec[j] = v.String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
