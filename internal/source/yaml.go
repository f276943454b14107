package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/odoma/benchdash/internal/table"
)

// readYAML reads a YAML sequence of mappings. Node-level decoding keeps the
// key order of the first record that introduces each column.
func readYAML(r io.Reader) (*table.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errors.New("expected a YAML sequence of records")
	}

	set := newRecordSet()
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d: expected a mapping", i)
		}
		var keys []string
		rec := make(map[string]table.Value, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			if _, dup := rec[key]; !dup {
				keys = append(keys, key)
			}
			rec[key] = yamlValue(item.Content[j+1])
		}
		set.add(keys, rec)
	}
	return set.table()
}

func yamlValue(n *yaml.Node) table.Value {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return yamlValue(n.Alias)
	}
	if n.Kind != yaml.ScalarNode {
		var v any
		if err := n.Decode(&v); err != nil {
			return table.TextValue(n.Value)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return table.TextValue(fmt.Sprint(v))
		}
		return table.TextValue(string(data))
	}

	switch n.ShortTag() {
	case "!!null":
		return table.NullValue()
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return table.NumberValue(f)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return table.NumberValue(f)
		}
		return table.TextValue(n.Value)
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			if b {
				return table.TextValue("True")
			}
			return table.TextValue("False")
		}
		return table.TextValue(n.Value)
	default:
		return table.TextValue(n.Value)
	}
}
