package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
)

// Default reload retry policy for file-triggered reloads.
const (
	DefaultReloadAttempts = 5
	DefaultReloadDelay    = 500 * time.Millisecond
)

// StoreConfig configures a Store.
type StoreConfig struct {
	Dataset Config
	Logger  *slog.Logger

	// ReloadAttempts and ReloadDelay bound the retries of a reload
	// triggered by a source file event.
	ReloadAttempts uint
	ReloadDelay    time.Duration

	// Loader replaces Load; used by tests.
	Loader func(Config) (*Dataset, error)
}

// Store is a read-through cache of the dataset keyed by its Config.
// The cached dataset is dropped when the config changes, when Invalidate
// is called, or when a watched source file changes.
type Store struct {
	mu      sync.RWMutex
	cfg     Config
	data    *Dataset
	lastErr error
	loads   int

	logger   *slog.Logger
	loader   func(Config) (*Dataset, error)
	attempts uint
	delay    time.Duration

	// sourcesChanged wakes Watch when SetConfig moves the source paths.
	sourcesChanged chan struct{}
}

// NewStore creates a store. Nothing is loaded until the first Get.
func NewStore(cfg StoreConfig) *Store {
	s := &Store{
		cfg:      cfg.Dataset,
		logger:   cfg.Logger,
		loader:   cfg.Loader,
		attempts: cfg.ReloadAttempts,
		delay:    cfg.ReloadDelay,

		sourcesChanged: make(chan struct{}, 1),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.loader == nil {
		s.loader = Load
	}
	if s.attempts == 0 {
		s.attempts = DefaultReloadAttempts
	}
	if s.delay == 0 {
		s.delay = DefaultReloadDelay
	}
	return s
}

// Get returns the cached dataset, loading it on a miss.
// Failed loads are not cached; the next Get tries again.
func (s *Store) Get(ctx context.Context) (*Dataset, error) {
	s.mu.RLock()
	if d := s.data; d != nil {
		s.mu.RUnlock()
		return d, nil
	}
	s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		return s.data, nil
	}
	return s.loadLocked()
}

// loadLocked loads the current config and replaces the cached dataset on
// success. On failure the previous snapshot, if any, stays cached.
func (s *Store) loadLocked() (*Dataset, error) {
	d, err := s.loader(s.cfg)
	s.loads++
	if err != nil {
		s.lastErr = err
		s.logger.Error("failed to load dataset",
			"scores", s.cfg.ScoresPath, "metadata", s.cfg.MetadataPath, "error", err)
		return nil, err
	}
	s.data = d
	s.lastErr = nil
	s.logger.Info("dataset loaded",
		"scores", s.cfg.ScoresPath,
		"metadata", s.cfg.MetadataPath,
		"pages", d.Pages.Len(),
		"documents", d.Aggregate.Len(),
		"unmatched", d.Join.Unmatched,
		"duration", d.Duration)
	return d, nil
}

// Cached returns the cached dataset without loading.
func (s *Store) Cached() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// LastError returns the error of the most recent failed load, or nil.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loads returns how many loads have been attempted.
func (s *Store) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

// Config returns the current dataset config.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Invalidate drops the cached dataset.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
}

// SetConfig swaps the dataset config and invalidates the cache when it
// changed. It reports whether the cache was dropped.
func (s *Store) SetConfig(cfg Config) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Equal(cfg) {
		return false
	}
	s.logger.Info("dataset sources changed",
		"scores", cfg.ScoresPath, "metadata", cfg.MetadataPath)
	s.cfg = cfg
	s.data = nil
	s.lastErr = nil
	select {
	case s.sourcesChanged <- struct{}{}:
	default:
	}
	return true
}

// Reload loads the sources again immediately. The cached dataset keeps
// serving readers until the new one has loaded; a failed reload leaves it
// in place.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// reloadWithRetry reloads, retrying while writers may still be flushing the
// source files.
func (s *Store) reloadWithRetry(ctx context.Context) error {
	return retry.Do(
		func() error {
			_, err := s.Reload(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("dataset reload failed, retrying", "attempt", n+1, "error", err)
		}),
	)
}

// Watch reloads the dataset whenever one of the configured source files is
// written, created, renamed or removed. The parent directories are watched
// so that editors and writers that replace files atomically are seen.
// Watch blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool)
	syncDirs := func() {
		want := make(map[string]bool)
		for _, p := range s.Config().Paths() {
			if p != "" {
				want[filepath.Dir(p)] = true
			}
		}
		for dir := range watched {
			if !want[dir] {
				if err := w.Remove(dir); err != nil {
					s.logger.Debug("cannot unwatch source directory", "path", dir, "error", err)
				}
				delete(watched, dir)
			}
		}
		for dir := range want {
			if watched[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				s.logger.Warn("cannot watch source directory", "path", dir, "error", err)
				continue
			}
			watched[dir] = true
		}
	}
	syncDirs()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.sourcesChanged:
			syncDirs()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !s.isSource(ev.Name) || ev.Op == fsnotify.Chmod {
				// A directory that failed to be added earlier may exist now.
				syncDirs()
				continue
			}
			s.logger.Info("source file changed", "path", ev.Name, "op", ev.Op.String())
			if err := s.reloadWithRetry(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("dataset reload gave up", "path", ev.Name, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func (s *Store) isSource(name string) bool {
	clean := filepath.Clean(name)
	for _, p := range s.Config().Paths() {
		if p != "" && filepath.Clean(p) == clean {
			return true
		}
	}
	return false
}
