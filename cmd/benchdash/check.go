package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/home"
	"github.com/odoma/benchdash/internal/source"
)

// CheckResult is printed by the check command.
type CheckResult struct {
	PageScores string                  `json:"page_scores" yaml:"page_scores"`
	Metadata   string                  `json:"metadata" yaml:"metadata"`
	Documents  int                     `json:"documents" yaml:"documents"`
	Pages      int                     `json:"pages" yaml:"pages"`
	Join       dataset.JoinReport      `json:"join" yaml:"join"`
	Aggregate  dataset.AggregateReport `json:"aggregate" yaml:"aggregate"`
	DurationMS int64                   `json:"duration_ms" yaml:"duration_ms"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the benchmark sources and report on the join",
	Long: `Load the page scores and metadata without starting a server.

Prints how many page rows found their metadata, which join keys were
missing or duplicated, and which columns differ within a document.
Exits non-zero when a source is missing or unreadable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		mgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		dc := mgr.Get().DatasetConfig()

		d, err := dataset.Load(dc)
		switch {
		case source.IsMissing(err):
			return fmt.Errorf("%w\nset the path in the config file or with BENCHDASH_SOURCES_* environment variables", err)
		case err != nil:
			return err
		}

		return api.Output(CheckResult{
			PageScores: dc.ScoresPath,
			Metadata:   dc.MetadataPath,
			Documents:  d.Aggregate.Len(),
			Pages:      d.Pages.Len(),
			Join:       d.Join,
			Aggregate:  d.Summary,
			DurationMS: d.Duration.Milliseconds(),
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
