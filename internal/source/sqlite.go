package source

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/odoma/benchdash/internal/table"
)

// readSQLite reads every row of tbl from a SQLite file opened read-only.
func readSQLite(path, tbl string) (*table.Table, error) {
	f, err := open(SourceMetadata, path)
	if err != nil {
		return nil, err
	}
	f.Close()

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT * FROM "` + strings.ReplaceAll(tbl, `"`, `""`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %q: %w", tbl, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, err
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(table.Row, len(cols))
		for i, v := range vals {
			row[i] = sqlValue(v)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("table %q has no rows", tbl)
	}
	return t, nil
}

func sqlValue(v any) table.Value {
	switch x := v.(type) {
	case nil:
		return table.NullValue()
	case int64:
		return table.NumberValue(float64(x))
	case float64:
		return table.NumberValue(x)
	case string:
		return table.TextValue(x)
	case []byte:
		return table.TextValue(string(x))
	case bool:
		if x {
			return table.TextValue("True")
		}
		return table.TextValue("False")
	case time.Time:
		return table.TextValue(x.Format(time.RFC3339))
	default:
		return table.TextValue(fmt.Sprint(x))
	}
}
