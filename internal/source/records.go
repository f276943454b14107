package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/odoma/benchdash/internal/table"
)

// recordSet accumulates keyed records while keeping the first-seen column order.
type recordSet struct {
	columns []string
	seen    map[string]bool
	records []map[string]table.Value
}

func newRecordSet() *recordSet {
	return &recordSet{seen: make(map[string]bool)}
}

func (s *recordSet) add(keys []string, rec map[string]table.Value) {
	for _, k := range keys {
		if !s.seen[k] {
			s.seen[k] = true
			s.columns = append(s.columns, k)
		}
	}
	s.records = append(s.records, rec)
}

func (s *recordSet) table() (*table.Table, error) {
	if len(s.records) == 0 {
		return nil, errors.New("no records")
	}
	t, err := table.New(s.columns)
	if err != nil {
		return nil, err
	}
	for _, rec := range s.records {
		row := make(table.Row, len(s.columns))
		for i, c := range s.columns {
			row[i] = rec[c]
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// readJSONArray reads a top-level JSON array of objects.
func readJSONArray(r io.Reader) (*table.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errors.New("expected a JSON array of records")
	}

	set := newRecordSet()
	for i := 0; dec.More(); i++ {
		keys, rec, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		set.add(keys, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return set.table()
}

// readJSONLines reads one JSON object per non-blank line.
func readJSONLines(r io.Reader) (*table.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), 64<<20)

	set := newRecordSet()
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		keys, rec, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set.add(keys, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set.table()
}

// decodeObject reads one JSON object from dec, preserving key order.
func decodeObject(dec *json.Decoder) ([]string, map[string]table.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}

	var keys []string
	rec := make(map[string]table.Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = jsonValue(raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, rec, nil
}

// jsonValue maps a decoded JSON value onto a cell. Booleans render the way
// pandas writes them; arrays and objects are kept as compact JSON text.
func jsonValue(v any) table.Value {
	switch x := v.(type) {
	case nil:
		return table.NullValue()
	case json.Number:
		if f, err := strconv.ParseFloat(string(x), 64); err == nil {
			return table.NumberValue(f)
		}
		return table.TextValue(string(x))
	case string:
		return table.TextValue(x)
	case bool:
		if x {
			return table.TextValue("True")
		}
		return table.TextValue("False")
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return table.TextValue(fmt.Sprint(x))
		}
		return table.TextValue(string(data))
	}
}
