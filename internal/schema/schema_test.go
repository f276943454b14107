package schema

import (
	"testing"
)

func TestAll(t *testing.T) {
	metrics := All()
	if len(metrics) == 0 {
		t.Fatal("expected at least one metric")
	}
	if metrics[0].Key != OverallScore {
		t.Errorf("expected overall score first, got %s", metrics[0].Key)
	}
	if got := len(Dimensions()); got != 5 {
		t.Errorf("expected 5 quality dimensions, got %d", got)
	}
}

func TestGet(t *testing.T) {
	t.Run("existing metric", func(t *testing.T) {
		m, err := Get(WordCount)
		if err != nil {
			t.Fatalf("Get(word_count) error = %v", err)
		}
		if m.Score {
			t.Error("word count should not be a bounded score")
		}
	})

	t.Run("non-existent metric", func(t *testing.T) {
		if _, err := Get("nonexistent"); err == nil {
			t.Error("expected error for non-existent metric")
		}
	})
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"filename", "Filename"},
		{"page_number", "Page Number"},
		{"overall_score_pymupdf", "Overall Score Pymupdf"},
		{"id_openalex", "Id Openalex"},
		{"ID_GOTRIPLE", "Id Gotriple"},
		{"abc1def", "Abc1Def"},
		{"title_y", "Title Y"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := DisplayName(tt.raw); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSchema_Columns(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if got := s.DefaultScoreColumn(); got != "Overall Score Pymupdf" {
		t.Errorf("DefaultScoreColumn() = %q", got)
	}
	if got := s.RawColumn("marker", WordCount); got != "word_count_marker" {
		t.Errorf("RawColumn() = %q", got)
	}

	scores := s.ScoreColumns()
	if len(scores) != 6*len(s.Tools) {
		t.Errorf("ScoreColumns() len = %d, want %d", len(scores), 6*len(s.Tools))
	}
	if !s.IsScoreColumn("Layout Separation Score Mineru") {
		t.Error("expected layout separation of mineru to be a score column")
	}
	if s.IsScoreColumn("Word Count Mineru") {
		t.Error("word count is not a score column")
	}
	if got := s.WordCountColumns(); len(got) != 3 || got[1] != "Word Count Marker" {
		t.Errorf("WordCountColumns() = %v", got)
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{"default", Default(), false},
		{"no tools", Schema{}, true},
		{"uppercase tool", Schema{Tools: []string{"PyMuPDF"}}, true},
		{"duplicate tool", Schema{Tools: []string{"a", "a"}}, true},
		{"unknown default", Schema{Tools: []string{"a"}, DefaultTool: "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
