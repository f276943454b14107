package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/assets"
	"github.com/odoma/benchdash/internal/config"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/home"
	"github.com/odoma/benchdash/internal/server/endpoints"
	"github.com/odoma/benchdash/internal/session"
	"github.com/odoma/benchdash/internal/svcctx"
)

// SessionSweepInterval is how often expired sessions are dropped.
const SessionSweepInterval = time.Minute

// Server is the benchdash HTTP server.
// It owns the dataset cache and the session store. Configuration changes
// are applied without a restart: the dataset is reloaded when its sources
// change, and the asset resolver and schema are swapped in place.
type Server struct {
	httpServer *http.Server
	datasets   *dataset.Store
	sessions   *session.Store
	configMgr  *config.Manager
	logger     *slog.Logger
	home       *home.Dir
	watch      bool

	// services holds all core services for context enrichment
	services atomic.Pointer[svcctx.Services]

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: the configured server.host)
	Host string
	// Port is the port to listen on (default: the configured server.port)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// Home is the benchdash home directory
	Home *home.Dir
	// Loader replaces dataset.Load; used by tests.
	Loader func(dataset.Config) (*dataset.Dataset, error)
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := cfg.ConfigManager.Get()
	if cfg.Host == "" {
		cfg.Host = c.Server.Host
	}
	if cfg.Port == "" {
		cfg.Port = fmt.Sprint(c.Server.Port)
	}
	ttl, err := c.SessionTTL()
	if err != nil {
		return nil, err
	}

	s := &Server{
		datasets: dataset.NewStore(dataset.StoreConfig{
			Dataset: c.DatasetConfig(),
			Logger:  cfg.Logger,
			Loader:  cfg.Loader,
		}),
		sessions:  session.NewStore(ttl, c.ViewDefaults()),
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
		home:      cfg.Home,
		watch:     c.Watch,
	}
	s.services.Store(s.buildServices(c))

	// Watch for config changes
	cfg.ConfigManager.OnChange(s.applyConfig)

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(s.withSession(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildServices assembles the services for a configuration.
func (s *Server) buildServices(c *config.Config) *svcctx.Services {
	sch := c.SchemaConfig()
	return &svcctx.Services{
		Datasets: s.datasets,
		Sessions: s.sessions,
		Assets:   assets.NewResolver(c.PDFDir(), c.MarkdownDir(), sch),
		Schema:   sch,
		Config:   s.configMgr,
		Logger:   s.logger,
		Home:     s.home,
	}
}

// applyConfig installs a changed configuration. The cached dataset is
// dropped only when its sources or aggregation options changed.
func (s *Server) applyConfig(c *config.Config) {
	if s.datasets.SetConfig(c.DatasetConfig()) {
		s.logger.Info("dataset sources changed, cache invalidated",
			"page_scores", c.DatasetConfig().ScoresPath,
			"metadata", c.DatasetConfig().MetadataPath)
	}
	s.services.Store(s.buildServices(c))
	s.logger.Info("services reloaded from config")
}

// Start starts the server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()
	defer s.setNotRunning()

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.watch {
		go func() {
			if err := s.datasets.Watch(bgCtx); err != nil {
				s.logger.Warn("source watcher stopped", "error", err)
			}
		}()
	}
	go s.sessions.Run(bgCtx, SessionSweepInterval, s.logger)

	// Warm the cache; a failure is reported by /ready and retried on demand.
	if _, err := s.datasets.Get(ctx); err != nil {
		s.logger.Warn("dataset not loaded", "error", err)
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", listener.Addr().String())
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Datasets returns the dataset cache.
func (s *Server) Datasets() *dataset.Store {
	return s.datasets
}

// Sessions returns the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc := s.services.Load(); svc != nil {
			ctx = svcctx.WithServices(ctx, svc)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withSession attaches a view session to /api requests. An unknown or
// expired session ID starts a new session; the ID in effect is returned in
// the X-Session-ID header and the session cookie.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		sess, created := s.sessions.Resolve(session.IDFromRequest(r))
		if created {
			s.logger.Debug("session started", "session", sess.ID)
		}
		session.SetCookie(w, sess.ID, s.sessions.TTL())
		next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sess.ID)))
	})
}

// requireInit is middleware that ensures the dataset is loaded.
// Returns 503 Service Unavailable with the load diagnostic otherwise.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.datasets.Get(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"error": "dataset not loaded: " + err.Error()})
			return
		}
		next(w, r)
	}
}
