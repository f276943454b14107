package schema

import (
	"fmt"
	"sort"
)

// Metric is one per-tool measurement the judge pipeline writes for every page.
type Metric struct {
	Key       string // Column stem (e.g., "overall_score")
	Label     string // Human label used in comparisons (e.g., "Overall Score")
	Dimension bool   // One of the five judged quality dimensions
	Score     bool   // Bounded [0,1] score, eligible for range filtering
	Order     int    // Display order (lower = first)
}

// Metric keys.
const (
	LineContinuity     = "line_continuity_score"
	ParagraphIntegrity = "paragraph_integrity_score"
	ContentSequencing  = "content_sequencing_score"
	LayoutSeparation   = "layout_separation_score"
	TextCompleteness   = "text_completeness_score"
	OverallScore       = "overall_score"
	WordCount          = "word_count"
	Perplexity         = "perplexity"
)

// registry holds every known metric in display order.
// Overall comes first so it leads score pickers.
var registry = []Metric{
	{Key: OverallScore, Label: "Overall Score", Score: true, Order: 1},
	{Key: LineContinuity, Label: "Line Continuity", Dimension: true, Score: true, Order: 2},
	{Key: ParagraphIntegrity, Label: "Paragraph Integrity", Dimension: true, Score: true, Order: 3},
	{Key: ContentSequencing, Label: "Content Sequencing", Dimension: true, Score: true, Order: 4},
	{Key: LayoutSeparation, Label: "Layout Separation", Dimension: true, Score: true, Order: 5},
	{Key: TextCompleteness, Label: "Text Completeness", Dimension: true, Score: true, Order: 6},
	{Key: WordCount, Label: "Word Count", Order: 7},
	{Key: Perplexity, Label: "Perplexity", Order: 8},
}

// All returns all metrics in display order.
func All() []Metric {
	metrics := make([]Metric, len(registry))
	copy(metrics, registry)
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Order < metrics[j].Order
	})
	return metrics
}

// Dimensions returns the five judged quality dimensions in display order.
func Dimensions() []Metric {
	var out []Metric
	for _, m := range All() {
		if m.Dimension {
			out = append(out, m)
		}
	}
	return out
}

// Get returns a single metric by key.
func Get(key string) (*Metric, error) {
	for _, m := range registry {
		if m.Key == key {
			m := m
			return &m, nil
		}
	}
	return nil, fmt.Errorf("metric not found: %s", key)
}
