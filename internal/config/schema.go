package config

import (
	"fmt"
	"time"

	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/source"
	"github.com/odoma/benchdash/internal/view"
)

// Config holds benchdash configuration.
// Stored at: ~/.benchdash/config.yaml or ./config.yaml
type Config struct {
	Sources   SourcesCfg   `mapstructure:"sources" yaml:"sources"`
	Schema    SchemaCfg    `mapstructure:"schema" yaml:"schema"`
	Aggregate AggregateCfg `mapstructure:"aggregate" yaml:"aggregate"`
	View      ViewCfg      `mapstructure:"view" yaml:"view"`
	Session   SessionCfg   `mapstructure:"session" yaml:"session"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
	Watch     bool         `mapstructure:"watch" yaml:"watch"`         // Reload when source files change
	LogLevel  string       `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
}

// SourcesCfg locates the benchmark inputs. Paths support ${ENV_VAR} syntax.
type SourcesCfg struct {
	PageScores    string `mapstructure:"page_scores" yaml:"page_scores"`       // Per-page score CSV
	Metadata      string `mapstructure:"metadata" yaml:"metadata"`             // .json, .jsonl, .csv, .yaml or .sqlite
	MetadataTable string `mapstructure:"metadata_table" yaml:"metadata_table"` // Table name for SQLite metadata
	IDField       string `mapstructure:"id_field" yaml:"id_field"`             // Identifier the join key is derived from
	PDFDir        string `mapstructure:"pdf_dir" yaml:"pdf_dir"`               // <pdf_dir>/<discipline>/<filename>.pdf
	MarkdownDir   string `mapstructure:"markdown_dir" yaml:"markdown_dir"`     // <markdown_dir>/<tool>/<discipline>/<filename>_<tool>.md
}

// SchemaCfg declares the extraction tools present in the score table.
type SchemaCfg struct {
	Tools       []string `mapstructure:"tools" yaml:"tools"`
	DefaultTool string   `mapstructure:"default_tool" yaml:"default_tool"`
}

// AggregateCfg controls the per-document aggregation.
type AggregateCfg struct {
	// Constant lists text columns expected to be constant per document.
	// Empty means every text column.
	Constant []string `mapstructure:"constant" yaml:"constant"`
	// Validate records conflicts in constant columns.
	Validate bool `mapstructure:"validate" yaml:"validate"`
}

// ViewCfg holds view defaults.
type ViewCfg struct {
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// SessionCfg configures per-user view state.
type SessionCfg struct {
	TTL string `mapstructure:"ttl" yaml:"ttl"` // Idle timeout, e.g. "30m"
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// Addr returns host:port.
func (s ServerCfg) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig converts the source settings into a dataset config,
// resolving ${ENV_VAR} references in paths.
func (c *Config) DatasetConfig() dataset.Config {
	return dataset.Config{
		ScoresPath:   ResolveEnvVars(c.Sources.PageScores),
		MetadataPath: ResolveEnvVars(c.Sources.Metadata),
		Metadata: source.MetadataOptions{
			IDField: c.Sources.IDField,
			Table:   c.Sources.MetadataTable,
		},
		Aggregate: dataset.AggregateOptions{
			Constant: c.Aggregate.Constant,
			Validate: c.Aggregate.Validate,
		},
	}
}

// SchemaConfig returns the declared tool schema, falling back to the
// published benchmark's tools.
func (c *Config) SchemaConfig() schema.Schema {
	if len(c.Schema.Tools) == 0 {
		return schema.Default()
	}
	tools := make([]string, len(c.Schema.Tools))
	copy(tools, c.Schema.Tools)
	return schema.Schema{Tools: tools, DefaultTool: c.Schema.DefaultTool}
}

// PDFDir returns the PDF root with ${ENV_VAR} references resolved.
func (c *Config) PDFDir() string { return ResolveEnvVars(c.Sources.PDFDir) }

// MarkdownDir returns the markdown root with ${ENV_VAR} references resolved.
func (c *Config) MarkdownDir() string { return ResolveEnvVars(c.Sources.MarkdownDir) }

// SessionTTL parses the session idle timeout.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Session.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid session.ttl %q: %w", c.Session.TTL, err)
	}
	return d, nil
}

// ViewDefaults returns the initial document view state of a new session.
func (c *Config) ViewDefaults() view.State {
	size := c.View.PageSize
	if !view.ValidPageSize(size) {
		size = view.DefaultPageSize
	}
	return view.State{Discipline: view.All, Page: 1, PageSize: size}
}

// Validate checks settings that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if err := c.SchemaConfig().Validate(); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if c.View.PageSize != 0 && !view.ValidPageSize(c.View.PageSize) {
		return fmt.Errorf("view.page_size %d must be one of %v", c.View.PageSize, view.PageSizes)
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}
