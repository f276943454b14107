package source

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/odoma/benchdash/internal/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10.1234/abc.def", "extracted_10_1234_abc_def"},
		{"oai:hal.science:hal-01", "extracted_oai_hal_science_hal-01"},
		{"plain", "extracted_plain"},
		{"", "extracted_"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := DeriveFilename(tt.raw); got != tt.want {
				t.Errorf("DeriveFilename(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReadScores(t *testing.T) {
	t.Run("parses values", func(t *testing.T) {
		path := writeFile(t, "scores.csv", "filename,discipline,page_number,overall_score_pymupdf,word_count_pymupdf\n"+
			"extracted_a,History,1,0.5,100\n"+
			"extracted_a,History,2,,150\n")

		tb, err := ReadScores(path)
		if err != nil {
			t.Fatalf("ReadScores() error = %v", err)
		}
		if tb.Len() != 2 {
			t.Fatalf("expected 2 rows, got %d", tb.Len())
		}
		if !tb.Get(1, "overall_score_pymupdf").IsNull() {
			t.Error("expected empty cell to be null")
		}
		if f, _ := tb.Get(1, "word_count_pymupdf").Float(); f != 150 {
			t.Errorf("expected word count 150, got %v", f)
		}
	})

	t.Run("index column and duplicate headers", func(t *testing.T) {
		path := writeFile(t, "scores.csv", ",filename,discipline,x,x\n0,f,D,1,2\n")
		tb, err := ReadScores(path)
		if err != nil {
			t.Fatalf("ReadScores() error = %v", err)
		}
		cols := tb.Columns()
		if cols[0] != "Unnamed: 0" || cols[4] != "x.1" {
			t.Errorf("unexpected header names %v", cols)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadScores(filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, ErrMissing) {
			t.Errorf("expected ErrMissing, got %v", err)
		}
		var srcErr *Error
		if !errors.As(err, &srcErr) || srcErr.Source != SourceScores {
			t.Errorf("expected *Error for page scores, got %#v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := ReadScores(""); !IsMissing(err) {
			t.Errorf("expected missing error, got %v", err)
		}
	})

	t.Run("ragged rows", func(t *testing.T) {
		path := writeFile(t, "scores.csv", "filename,discipline\nf,D,extra\n")
		if _, err := ReadScores(path); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})

	t.Run("missing key column", func(t *testing.T) {
		path := writeFile(t, "scores.csv", "filename,page_number\nf,1\n")
		if _, err := ReadScores(path); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "scores.csv", "")
		if _, err := ReadScores(path); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})
}

func TestReadMetadata_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json array",
			file:    "meta.json",
			content: `[{"id_gotriple":"10.1/a.b","discipline":"History","title":"T","authors":["x","y"],"oa":true}]`,
		},
		{
			name:    "json lines",
			file:    "meta.jsonl",
			content: "{\"id_gotriple\":\"10.1/a.b\",\"discipline\":\"History\",\"title\":\"T\",\"authors\":[\"x\",\"y\"],\"oa\":true}\n\n",
		},
		{
			name:    "csv",
			file:    "meta.csv",
			content: "id_gotriple,discipline,title,authors,oa\n10.1/a.b,History,T,\"[\"\"x\"\",\"\"y\"\"]\",True\n",
		},
		{
			name: "yaml",
			file: "meta.yaml",
			content: `- id_gotriple: "10.1/a.b"
  discipline: History
  title: T
  authors: [x, y]
  oa: true
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			tb, err := ReadMetadata(path, MetadataOptions{})
			if err != nil {
				t.Fatalf("ReadMetadata() error = %v", err)
			}
			if tb.Len() != 1 {
				t.Fatalf("expected 1 row, got %d", tb.Len())
			}
			if got := tb.Get(0, schema.ColFilename).String(); got != "extracted_10_1_a_b" {
				t.Errorf("filename = %q", got)
			}
			if got := tb.Get(0, "authors").String(); got != `["x","y"]` {
				t.Errorf("authors = %q", got)
			}
			if got := tb.Get(0, "oa").String(); got != "True" {
				t.Errorf("oa = %q", got)
			}
			cols := tb.Columns()
			if cols[0] != "id_gotriple" || cols[len(cols)-1] != schema.ColFilename {
				t.Errorf("unexpected column order %v", cols)
			}
		})
	}
}

func TestReadMetadata_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	stmts := []string{
		`CREATE TABLE docs (id_gotriple TEXT, discipline TEXT, year INTEGER)`,
		`INSERT INTO docs VALUES ('10.9/z', 'Law', 2021)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	tb, err := ReadMetadata(path, MetadataOptions{Table: "docs"})
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if got := tb.Get(0, schema.ColFilename).String(); got != "extracted_10_9_z" {
		t.Errorf("filename = %q", got)
	}
	if f, ok := tb.Get(0, "year").Float(); !ok || f != 2021 {
		t.Errorf("year = %v, %v", f, ok)
	}

	if _, err := ReadMetadata(path, MetadataOptions{Table: "missing"}); !IsCorrupt(err) {
		t.Errorf("expected corrupt error for missing table, got %v", err)
	}
}

func TestReadMetadata_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadMetadata(filepath.Join(t.TempDir(), "meta.json"), MetadataOptions{})
		if !IsMissing(err) {
			t.Errorf("expected missing error, got %v", err)
		}
	})

	t.Run("missing sqlite file", func(t *testing.T) {
		_, err := ReadMetadata(filepath.Join(t.TempDir(), "meta.db"), MetadataOptions{})
		if !IsMissing(err) {
			t.Errorf("expected missing error, got %v", err)
		}
	})

	t.Run("pickle", func(t *testing.T) {
		path := writeFile(t, "meta.pkl", "\x80\x04")
		if _, err := ReadMetadata(path, MetadataOptions{}); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "meta.json", `[{"id_gotriple": }`)
		if _, err := ReadMetadata(path, MetadataOptions{}); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})

	t.Run("null identifier", func(t *testing.T) {
		path := writeFile(t, "meta.json", `[{"id_gotriple": null, "discipline": "History"}]`)
		if _, err := ReadMetadata(path, MetadataOptions{}); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})

	t.Run("custom id field missing", func(t *testing.T) {
		path := writeFile(t, "meta.json", `[{"id_gotriple": "a", "discipline": "History"}]`)
		if _, err := ReadMetadata(path, MetadataOptions{IDField: "doi"}); !IsCorrupt(err) {
			t.Errorf("expected corrupt error, got %v", err)
		}
	})
}
