package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/server/endpoints"
)

var (
	serverURL string
	sessionID string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running benchdash server via HTTP.

These commands require a running server (benchdash serve).
Use --server to specify a custom server URL.

The server keeps filters and the selected document in a session. Each
response carries the session ID; pass it with --session (or set
BENCHDASH_SESSION) to continue where the last command left off.

Examples:
  benchdash api status
  benchdash api documents list --discipline History --score-min 0.8
  benchdash api selection select 0 --session <id>
  benchdash api selection compare --session <id>
  benchdash api documents export --session <id>`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		rootCmd.PersistentPreRun(cmd, args)
		api.SetSession(sessionID)
	},
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Per-document view commands",
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Page explorer commands",
}

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Selected document commands",
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summary and chart data commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func addGroup(parent *cobra.Command, eps []api.Endpoint) {
	for _, ep := range eps {
		if cmd := ep.Command(getServerURL); cmd != nil {
			parent.AddCommand(cmd)
		}
	}
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)
	apiCmd.PersistentFlags().StringVar(
		&sessionID, "session", os.Getenv("BENCHDASH_SESSION"), "Session ID to continue",
	)

	// Health and dataset endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReloadEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerUIEndpoint{}).Command(getServerURL))

	addGroup(documentsCmd, endpoints.DocumentCommands())
	addGroup(pagesCmd, endpoints.PageCommands())
	addGroup(selectionCmd, endpoints.SelectionCommands())
	addGroup(statsCmd, endpoints.StatsCommands())

	apiCmd.AddCommand(documentsCmd)
	apiCmd.AddCommand(pagesCmd)
	apiCmd.AddCommand(selectionCmd)
	apiCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(apiCmd)
}
