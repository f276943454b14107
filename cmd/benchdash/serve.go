package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/config"
	"github.com/odoma/benchdash/internal/home"
	"github.com/odoma/benchdash/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the benchdash server",
	Long: `Start the benchdash HTTP server.

The server loads the page scores and metadata named in the config, keeps
the joined dataset in memory and reloads it when the source files or the
config file change.

The server provides:
  - /health, /ready, /status - Health and dataset status
  - /api/...                 - Document, page, selection and chart endpoints
  - /swagger                 - API documentation

Examples:
  benchdash serve                    # Start on the configured address
  benchdash serve --port 3000        # Start on custom port
  benchdash serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		mgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		// Set up logger
		level, err := parseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if used := mgr.ConfigFileUsed(); used != "" {
			logger.Info("using config file", "path", used)
			mgr.WatchConfig()
		}

		srvCfg := server.Config{
			Host:          serveHost,
			ConfigManager: mgr,
			Logger:        logger,
			Home:          h,
		}
		if servePort > 0 {
			srvCfg.Port = strconv.Itoa(servePort)
		}
		srv, err := server.New(srvCfg)
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// loadConfig reads --config, falling back to the home directory's config
// file and then to ./config.yaml.
func loadConfig(h *home.Dir) (*config.Manager, error) {
	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	return config.NewManager(path)
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: server.host from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: server.port from config)")

	rootCmd.AddCommand(serveCmd)
}
