package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Dataset string `json:"dataset,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

var _ api.Endpoint = (*HealthEndpoint)(nil)

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Returns ok while the HTTP server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

var _ api.Endpoint = (*ReadyEndpoint)(nil)

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Loads the dataset if needed; 503 with the diagnostic when the sources cannot be read
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.DatasetsFrom(r.Context())
	if store == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Dataset: "not_initialized"})
		return
	}
	if _, err := store.Get(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Dataset: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Dataset: "loaded"})
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (dataset loaded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:  %s\n", resp.Status)
			if resp.Dataset != "" {
				fmt.Printf("Dataset: %s\n", resp.Dataset)
			}
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server   string        `json:"server"`
	Sources  SourcesStatus `json:"sources"`
	Dataset  DatasetStatus `json:"dataset"`
	Sessions int           `json:"sessions"`
}

// SourcesStatus shows where the dataset and assets are read from.
type SourcesStatus struct {
	ConfigFile  string   `json:"config_file,omitempty"`
	PageScores  string   `json:"page_scores"`
	Metadata    string   `json:"metadata"`
	PDFDir      string   `json:"pdf_dir,omitempty"`
	MarkdownDir string   `json:"markdown_dir,omitempty"`
	Tools       []string `json:"tools"`
}

// DatasetStatus describes the cached dataset.
type DatasetStatus struct {
	Loaded     bool                     `json:"loaded"`
	Documents  int                      `json:"documents,omitempty"`
	Pages      int                      `json:"pages,omitempty"`
	Join       *dataset.JoinReport      `json:"join,omitempty"`
	Aggregate  *dataset.AggregateReport `json:"aggregate,omitempty"`
	LoadedAt   *time.Time               `json:"loaded_at,omitempty"`
	DurationMS int64                    `json:"duration_ms,omitempty"`
	Loads      int                      `json:"loads"`
	Error      string                   `json:"error,omitempty"`
}

func datasetStatus(store *dataset.Store, d *dataset.Dataset) DatasetStatus {
	st := DatasetStatus{Loads: store.Loads()}
	if err := store.LastError(); err != nil {
		st.Error = err.Error()
	}
	if d == nil {
		return st
	}
	join, agg, at := d.Join, d.Summary, d.LoadedAt
	st.Loaded = true
	st.Documents = d.Aggregate.Len()
	st.Pages = d.Pages.Len()
	st.Join = &join
	st.Aggregate = &agg
	st.LoadedAt = &at
	st.DurationMS = d.Duration.Milliseconds()
	return st
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

var _ api.Endpoint = (*StatusEndpoint)(nil)

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Source paths, join and aggregation reports of the cached dataset, session count
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{Server: "running"}
	resp.Sources.Tools = svcctx.SchemaFrom(ctx).Tools

	if mgr := svcctx.ConfigFrom(ctx); mgr != nil {
		resp.Sources.ConfigFile = mgr.ConfigFileUsed()
	}
	if res := svcctx.AssetsFrom(ctx); res != nil {
		resp.Sources.PDFDir = res.PDFDir
		resp.Sources.MarkdownDir = res.MarkdownDir
	}
	if store := svcctx.DatasetsFrom(ctx); store != nil {
		cfg := store.Config()
		resp.Sources.PageScores = cfg.ScoresPath
		resp.Sources.Metadata = cfg.MetadataPath
		resp.Dataset = datasetStatus(store, store.Cached())
	}
	if sessions := svcctx.SessionsFrom(ctx); sessions != nil {
		resp.Sessions = sessions.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ReloadEndpoint handles POST /api/reload.
type ReloadEndpoint struct{}

var _ api.Endpoint = (*ReloadEndpoint)(nil)

func (e *ReloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/reload", e.handler
}

func (e *ReloadEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Reload dataset
//	@Description	Drops the cached dataset and reads the sources again
//	@Tags			dataset
//	@Produce		json
//	@Success		200	{object}	DatasetStatus
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/reload [post]
func (e *ReloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.DatasetsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset store not initialized")
		return
	}
	d, err := store.Reload(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	svcctx.LoggerFrom(r.Context()).Info("dataset reloaded on request", "documents", d.Aggregate.Len())
	writeJSON(w, http.StatusOK, datasetStatus(store, d))
}

func (e *ReloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the benchmark sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp DatasetStatus
			if err := client.Post(cmd.Context(), "/api/reload", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeJSON writes a JSON response. The body is encoded before the status
// is sent so an encoding failure can still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: fmt.Sprintf("failed to encode response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
