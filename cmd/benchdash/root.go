package main

import (
	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/home"
	"github.com/odoma/benchdash/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "benchdash",
	Short: "Dashboard for PDF text extraction benchmark results",
	Long: `Benchdash serves the results of a PDF text extraction benchmark.

It joins the per-page judge scores with the document metadata, averages
them per document and lets you:
  - Filter documents by discipline, score range, word count and filename
  - Explore page-level scores
  - Compare extraction tools on a selected document
  - Export filtered rows as CSV`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.benchdash/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "benchdash home directory (default: ~/.benchdash)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format and download directory before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
		if h, err := home.New(homeDir); err == nil {
			api.SetDownloadDir(h.ExportsDir())
		}
	}

	rootCmd.AddCommand(versionCmd)
}
