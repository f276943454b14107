package endpoints

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// documentFlags are the CLI flags mirroring the document view parameters.
var documentFlags = []queryFlag{
	{"discipline", "Discipline filter (All for every discipline)"},
	{"score-column", "Score column to filter on"},
	{"score-min", "Lower bound of the score filter"},
	{"score-max", "Upper bound of the score filter"},
	{"min-words", "Minimum word count on any tool"},
	{"search", "Case-insensitive filename substring"},
	{"page", "Page number"},
	{"page-size", "Rows per page (10, 25, 50 or 100)"},
	{"columns", "Comma-separated columns to show"},
}

// pageFlags are the CLI flags mirroring the page explorer parameters.
var pageFlags = []queryFlag{
	{"discipline", "Discipline filter (All for every discipline)"},
	{"page-min", "Lowest page number"},
	{"page-max", "Highest page number"},
	{"min-overall", "Minimum overall score on any tool"},
	{"min-words", "Minimum word count on any tool"},
	{"search", "Case-insensitive filename substring"},
	{"page", "Page number"},
	{"page-size", "Rows per page (10, 25, 50 or 100)"},
	{"columns", "Comma-separated columns to show"},
}

type queryFlag struct {
	name  string
	usage string
}

// addQueryFlags registers string flags plus --reset on cmd.
func addQueryFlags(cmd *cobra.Command, flags []queryFlag) {
	for _, f := range flags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().Bool("reset", false, "Reset the session view to its defaults first")
}

// queryFromFlags converts the flags set on the command line into query
// parameters. Unset flags are left out so the server keeps its session
// state for them. Use --reset to clear earlier filters.
func queryFromFlags(cmd *cobra.Command) url.Values {
	q := url.Values{}
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		q.Set("reset", "true")
	}
	for _, f := range append(documentFlags, pageFlags...) {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil || !flag.Changed {
			continue
		}
		q.Set(strings.ReplaceAll(f.name, "-", "_"), flag.Value.String())
	}
	return q
}
