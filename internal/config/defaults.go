package config

import (
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/source"
	"github.com/odoma/benchdash/internal/view"
)

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	tools := make([]string, len(schema.DefaultTools))
	copy(tools, schema.DefaultTools)
	return &Config{
		Sources: SourcesCfg{
			PageScores:  "data/page_scores_full.csv",
			Metadata:    "data/metadata.json",
			IDField:     source.DefaultIDField,
			PDFDir:      "resources/gotriple_pdfs",
			MarkdownDir: "resources/extracted",
		},
		Schema: SchemaCfg{
			Tools:       tools,
			DefaultTool: "pymupdf",
		},
		View:     ViewCfg{PageSize: view.DefaultPageSize},
		Session:  SessionCfg{TTL: "30m"},
		Server:   ServerCfg{Host: "127.0.0.1", Port: 8080},
		Watch:    true,
		LogLevel: "info",
	}
}

// legacyEnv maps config keys to the environment names used by earlier
// deployments of the dashboard. They are honored next to BENCHDASH_*.
var legacyEnv = map[string][]string{
	"sources.pdf_dir":      {"PDF_DIR"},
	"sources.markdown_dir": {"MARKDOWN_DIR"},
	"sources.page_scores":  {"PAGE_SCORES_CSV"},
	"sources.metadata":     {"METADATA_PATH", "METADATA_PKL"},
}

// defaultValues flattens DefaultConfig into viper keys.
func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"sources.page_scores":    d.Sources.PageScores,
		"sources.metadata":       d.Sources.Metadata,
		"sources.metadata_table": d.Sources.MetadataTable,
		"sources.id_field":       d.Sources.IDField,
		"sources.pdf_dir":        d.Sources.PDFDir,
		"sources.markdown_dir":   d.Sources.MarkdownDir,
		"schema.tools":           d.Schema.Tools,
		"schema.default_tool":    d.Schema.DefaultTool,
		"aggregate.constant":     d.Aggregate.Constant,
		"aggregate.validate":     d.Aggregate.Validate,
		"view.page_size":         d.View.PageSize,
		"session.ttl":            d.Session.TTL,
		"server.host":            d.Server.Host,
		"server.port":            d.Server.Port,
		"watch":                  d.Watch,
		"log_level":              d.LogLevel,
	}
}
