package source

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// recordSchema is the minimum every metadata record must satisfy for the
// join key to be derivable.
func recordSchema(idField string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{idField, schema.ColDiscipline},
		"properties": map[string]any{
			idField:              map[string]any{"type": []string{"string", "number"}},
			schema.ColDiscipline: map[string]any{"type": "string", "minLength": 1},
		},
	})
}

// validateMetadata checks every metadata row against the record schema.
func validateMetadata(t *table.Table, idField string) error {
	raw, err := recordSchema(idField)
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metadata.json", strings.NewReader(string(raw))); err != nil {
		return fmt.Errorf("failed to load metadata schema: %w", err)
	}
	sch, err := compiler.Compile("metadata.json")
	if err != nil {
		return fmt.Errorf("failed to compile metadata schema: %w", err)
	}

	for _, col := range []string{idField, schema.ColDiscipline} {
		if !t.Has(col) {
			return fmt.Errorf("missing required column %q", col)
		}
	}

	cols := []string{idField, schema.ColDiscipline}
	for i := 0; i < t.Len(); i++ {
		rec := make(map[string]any, len(cols))
		for _, c := range cols {
			rec[c] = t.Get(i, c).Interface()
		}
		if err := sch.Validate(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
