package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// DefaultIDField is the raw identifier column of the GoTriple metadata export.
const DefaultIDField = "id_gotriple"

// DefaultSQLiteTable is read when the metadata source is a SQLite file.
const DefaultSQLiteTable = "metadata"

// MetadataOptions controls how the metadata table is read.
type MetadataOptions struct {
	// IDField names the raw identifier column the join key is derived from.
	IDField string
	// Table names the table to read from SQLite sources.
	Table string
}

func (o MetadataOptions) withDefaults() MetadataOptions {
	if o.IDField == "" {
		o.IDField = DefaultIDField
	}
	if o.Table == "" {
		o.Table = DefaultSQLiteTable
	}
	return o
}

// ReadMetadata loads the per-document metadata table and adds the derived
// filename column. The format is chosen by extension: .json, .jsonl/.ndjson,
// .csv, .yaml/.yml or .db/.sqlite/.sqlite3.
func ReadMetadata(path string, opts MetadataOptions) (*table.Table, error) {
	opts = opts.withDefaults()

	var (
		t   *table.Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		t, err = readWith(path, readJSONArray)
	case ".jsonl", ".ndjson":
		t, err = readWith(path, readJSONLines)
	case ".csv":
		t, err = readWith(path, readCSV)
	case ".yaml", ".yml":
		t, err = readWith(path, readYAML)
	case ".db", ".sqlite", ".sqlite3":
		t, err = readSQLite(path, opts.Table)
	case ".pkl", ".pickle":
		if _, oerr := open(SourceMetadata, path); oerr != nil {
			return nil, oerr
		}
		return nil, corrupt(SourceMetadata, path, errors.New(
			`python pickle is not supported; export the frame with DataFrame.to_json(path, orient="records")`))
	default:
		if _, oerr := open(SourceMetadata, path); oerr != nil {
			return nil, oerr
		}
		return nil, corrupt(SourceMetadata, path, fmt.Errorf("unsupported metadata format %q", ext))
	}
	if err != nil {
		var srcErr *Error
		if errors.As(err, &srcErr) {
			return nil, err
		}
		return nil, corrupt(SourceMetadata, path, err)
	}

	if err := validateMetadata(t, opts.IDField); err != nil {
		return nil, corrupt(SourceMetadata, path, err)
	}

	out, err := withFilename(t, opts.IDField)
	if err != nil {
		return nil, corrupt(SourceMetadata, path, err)
	}
	return out, nil
}

func readWith(path string, parse func(io.Reader) (*table.Table, error)) (*table.Table, error) {
	f, err := open(SourceMetadata, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// withFilename appends (or replaces) the filename column derived from idField.
func withFilename(t *table.Table, idField string) (*table.Table, error) {
	cols := t.Columns()
	pos := t.Index(schema.ColFilename)
	if pos < 0 {
		cols = append(cols, schema.ColFilename)
		pos = len(cols) - 1
	}
	out, err := table.New(cols)
	if err != nil {
		return nil, err
	}

	idIdx := t.Index(idField)
	for _, r := range t.Rows() {
		nr := make(table.Row, len(cols))
		copy(nr, r)
		nr[pos] = table.TextValue(DeriveFilename(r[idIdx].String()))
		if err := out.Append(nr); err != nil {
			return nil, err
		}
	}
	return out, nil
}
