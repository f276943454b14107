package stats

import (
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// ToolComparison is one tool's headline metrics for a selected document.
// Nil means the row has no value for that metric.
type ToolComparison struct {
	Tool         string   `json:"tool"`
	OverallScore *float64 `json:"overall_score"`
	WordCount    *float64 `json:"word_count"`
	Perplexity   *float64 `json:"perplexity"`
}

// DimensionScore is one quality dimension of one tool.
type DimensionScore struct {
	Dimension string   `json:"dimension"`
	Score     *float64 `json:"score"`
}

// ToolBreakdown holds a tool's five dimension scores in display order.
type ToolBreakdown struct {
	Tool       string           `json:"tool"`
	Dimensions []DimensionScore `json:"dimensions"`
}

// Comparison is the side-by-side view of every tool for one document.
type Comparison struct {
	Tools     []ToolComparison `json:"tools"`
	Breakdown []ToolBreakdown  `json:"breakdown"`
}

// Compare reads the per-tool metrics out of a selected row's field map.
func Compare(row map[string]table.Value, sch schema.Schema) Comparison {
	get := func(tool, metric string) *float64 {
		v, ok := row[sch.Column(tool, metric)]
		if !ok {
			return nil
		}
		f, isNum := v.Float()
		if !isNum {
			return nil
		}
		return &f
	}

	var c Comparison
	for _, tool := range sch.Tools {
		label := schema.ToolLabel(tool)
		c.Tools = append(c.Tools, ToolComparison{
			Tool:         label,
			OverallScore: get(tool, schema.OverallScore),
			WordCount:    get(tool, schema.WordCount),
			Perplexity:   get(tool, schema.Perplexity),
		})

		b := ToolBreakdown{Tool: label}
		for _, m := range schema.Dimensions() {
			b.Dimensions = append(b.Dimensions, DimensionScore{Dimension: m.Label, Score: get(tool, m.Key)})
		}
		c.Breakdown = append(c.Breakdown, b)
	}
	return c
}
