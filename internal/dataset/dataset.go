// Package dataset builds the two linked benchmark tables: the page-level
// table (scores left-joined to metadata) and the document-level aggregate.
package dataset

import (
	"fmt"
	"slices"
	"time"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/source"
	"github.com/odoma/benchdash/internal/table"
)

// Config locates the sources and controls the pipeline.
type Config struct {
	ScoresPath   string
	MetadataPath string
	Metadata     source.MetadataOptions
	Aggregate    AggregateOptions
}

// Paths returns the source files the dataset is read from.
func (c Config) Paths() []string {
	return []string{c.ScoresPath, c.MetadataPath}
}

// Equal reports whether two configs produce the same dataset.
func (c Config) Equal(o Config) bool {
	return c.ScoresPath == o.ScoresPath &&
		c.MetadataPath == o.MetadataPath &&
		c.Metadata == o.Metadata &&
		c.Aggregate.Validate == o.Aggregate.Validate &&
		slices.Equal(c.Aggregate.Constant, o.Aggregate.Constant)
}

// Dataset is one loaded, joined and aggregated snapshot. It is shared
// read-only across sessions.
type Dataset struct {
	// Aggregate holds one row per document, with display column names.
	Aggregate *table.Table
	// Pages holds one row per document page, with display column names.
	Pages *table.Table

	Join     JoinReport
	Summary  AggregateReport
	Config   Config
	LoadedAt time.Time
	Duration time.Duration
}

// Load reads both sources and runs the join and aggregation.
// Source errors are returned unchanged so callers can match them with
// source.IsMissing and source.IsCorrupt.
func Load(cfg Config) (*Dataset, error) {
	start := time.Now()

	scores, err := source.ReadScores(cfg.ScoresPath)
	if err != nil {
		return nil, err
	}
	meta, err := source.ReadMetadata(cfg.MetadataPath, cfg.Metadata)
	if err != nil {
		return nil, err
	}
	return Build(scores, meta, cfg, start)
}

// Build runs the pipeline on tables that are already loaded.
func Build(scores, meta *table.Table, cfg Config, start time.Time) (*Dataset, error) {
	joined, jr, err := LeftJoin(scores, meta)
	if err != nil {
		return nil, err
	}
	agg, ar, err := Aggregate(joined, cfg.Aggregate)
	if err != nil {
		return nil, err
	}

	pages, err := Normalize(joined)
	if err != nil {
		return nil, fmt.Errorf("page table: %w", err)
	}
	docs, err := Normalize(agg)
	if err != nil {
		return nil, fmt.Errorf("aggregate table: %w", err)
	}

	return &Dataset{
		Aggregate: docs,
		Pages:     pages,
		Join:      jr,
		Summary:   ar,
		Config:    cfg,
		LoadedAt:  time.Now(),
		Duration:  time.Since(start),
	}, nil
}

// Normalize rewrites every column to its display name.
func Normalize(t *table.Table) (*table.Table, error) {
	return t.Rename(schema.DisplayName)
}
