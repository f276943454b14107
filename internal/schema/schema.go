// Package schema declares the column layout of the benchmark tables:
// which extraction tools exist, which metrics each tool carries, and how raw
// column identifiers map to display names. Components look columns up here
// instead of pattern-matching on names.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Raw key and page-index columns shared by every table.
const (
	ColFilename   = "filename"
	ColDiscipline = "discipline"
	ColPageNumber = "page_number"
	ColPageNum    = "page_num" // legacy name written by older scorers
)

// Display names of the key columns after normalization.
var (
	Filename   = DisplayName(ColFilename)
	Discipline = DisplayName(ColDiscipline)
	PageNumber = DisplayName(ColPageNumber)
	PageNum    = DisplayName(ColPageNum)
)

// DefaultTools are the extractors compared by the benchmark.
var DefaultTools = []string{"pymupdf", "marker", "mineru"}

var toolPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// Schema binds the metric registry to a concrete set of tools.
type Schema struct {
	Tools       []string
	DefaultTool string
}

// Default returns the schema of the published benchmark.
func Default() Schema {
	tools := make([]string, len(DefaultTools))
	copy(tools, DefaultTools)
	return Schema{Tools: tools, DefaultTool: "pymupdf"}
}

// Validate checks that tool names are usable as column suffixes and path segments.
func (s Schema) Validate() error {
	if len(s.Tools) == 0 {
		return errors.New("schema has no tools")
	}
	seen := make(map[string]bool, len(s.Tools))
	for _, t := range s.Tools {
		if !toolPattern.MatchString(t) {
			return fmt.Errorf("invalid tool name %q: must be lowercase alphanumeric", t)
		}
		if seen[t] {
			return fmt.Errorf("duplicate tool %q", t)
		}
		seen[t] = true
	}
	if s.DefaultTool != "" && !seen[s.DefaultTool] {
		return fmt.Errorf("default tool %q is not in tools %v", s.DefaultTool, s.Tools)
	}
	return nil
}

// HasTool reports whether tool is part of the schema.
func (s Schema) HasTool(tool string) bool {
	for _, t := range s.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// RawColumn returns the raw identifier of metric for tool, e.g. "overall_score_pymupdf".
func (s Schema) RawColumn(tool, metric string) string {
	return metric + "_" + tool
}

// Column returns the display name of metric for tool, e.g. "Overall Score Pymupdf".
func (s Schema) Column(tool, metric string) string {
	return DisplayName(s.RawColumn(tool, metric))
}

// Columns returns the display names of metric for every tool, in tool order.
func (s Schema) Columns(metric string) []string {
	out := make([]string, len(s.Tools))
	for i, t := range s.Tools {
		out[i] = s.Column(t, metric)
	}
	return out
}

// ScoreColumns returns the display names of every bounded score column,
// grouped by metric in display order, then by tool.
func (s Schema) ScoreColumns() []string {
	var out []string
	for _, m := range All() {
		if m.Score {
			out = append(out, s.Columns(m.Key)...)
		}
	}
	return out
}

// OverallColumns returns the overall-score display names per tool.
func (s Schema) OverallColumns() []string { return s.Columns(OverallScore) }

// WordCountColumns returns the word-count display names per tool.
func (s Schema) WordCountColumns() []string { return s.Columns(WordCount) }

// DefaultScoreColumn is the overall score of the default tool.
func (s Schema) DefaultScoreColumn() string {
	tool := s.DefaultTool
	if tool == "" && len(s.Tools) > 0 {
		tool = s.Tools[0]
	}
	return s.Column(tool, OverallScore)
}

// IsScoreColumn reports whether name is a declared score display name.
func (s Schema) IsScoreColumn(name string) bool {
	for _, c := range s.ScoreColumns() {
		if c == name {
			return true
		}
	}
	return false
}

// ToolLabel returns the display label of a tool ("pymupdf" -> "Pymupdf").
func ToolLabel(tool string) string { return DisplayName(tool) }

// IsPageIndex reports whether a raw column holds the page index.
func IsPageIndex(raw string) bool {
	return raw == ColPageNumber || raw == ColPageNum
}

// DisplayName rewrites a raw column identifier for display: underscores
// become spaces and the result is title-cased, so that the first letter of
// every run of letters is upper case and the rest lower case
// ("id_openalex" -> "Id Openalex", "abc1def" -> "Abc1Def").
func DisplayName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	prevLetter := false
	for _, r := range strings.ReplaceAll(raw, "_", " ") {
		switch {
		case unicode.IsLetter(r) && prevLetter:
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
