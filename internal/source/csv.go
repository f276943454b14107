package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/odoma/benchdash/internal/table"
)

// readCSV parses a headed CSV stream into a table. Blank header cells are
// named "Unnamed: N" and repeated names get ".1", ".2" suffixes so that
// files written with an index column still load.
func readCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t, err := table.New(headerNames(header))
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(table.Row, len(rec))
		for i, cell := range rec {
			row[i] = table.Parse(cell)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		names[i] = h
	}
	return names
}
