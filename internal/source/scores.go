// Package source reads the benchmark inputs from disk: the page-score table
// written by the judge and the per-document metadata table.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// Source labels used in errors and logs.
const (
	SourceScores   = "page scores"
	SourceMetadata = "metadata"
)

// ReadScores loads the page-score CSV as-is. The file must carry the
// filename and discipline key columns.
func ReadScores(path string) (*table.Table, error) {
	f, err := open(SourceScores, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := readCSV(f)
	if err != nil {
		return nil, corrupt(SourceScores, path, err)
	}
	for _, col := range []string{schema.ColFilename, schema.ColDiscipline} {
		if !t.Has(col) {
			return nil, corrupt(SourceScores, path, fmt.Errorf("missing required column %q", col))
		}
	}
	return t, nil
}

// open distinguishes a path that does not exist from one that cannot be read.
func open(src, path string) (*os.File, error) {
	if path == "" {
		return nil, missing(src, path, errors.New("no path configured"))
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, missing(src, path, nil)
	}
	if err != nil {
		return nil, corrupt(src, path, err)
	}
	if info.IsDir() {
		return nil, corrupt(src, path, errors.New("is a directory"))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, corrupt(src, path, err)
	}
	return f, nil
}
