// Package session keeps per-user view state in memory: the document and page
// filters and the currently selected document. Sessions are keyed by a UUID
// and dropped after an idle TTL.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odoma/benchdash/internal/view"
)

const (
	// CookieName carries the session ID for browsers.
	CookieName = "benchdash_session"
	// HeaderName carries the session ID for API clients.
	HeaderName = "X-Session-ID"
	// DefaultTTL is the idle time after which a session expires.
	DefaultTTL = 30 * time.Minute
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is one user's view state. Values returned by the Store are
// snapshots; change state through Store.Update.
type Session struct {
	ID        string          `json:"id"`
	State     view.State      `json:"state"`
	Pages     view.PageState  `json:"pages"`
	Selection *view.Selection `json:"selection,omitempty"`
	Created   time.Time       `json:"created"`
	LastSeen  time.Time       `json:"last_seen"`
}

// Store holds sessions in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	defaults view.State
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity and
// start with the given document view state.
func NewStore(ttl time.Duration, defaults view.State) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		defaults: defaults,
		now:      time.Now,
	}
}

// TTL returns the idle timeout.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create starts a new session with the default view state.
func (s *Store) Create() Session {
	now := s.now()
	sess := &Session{
		ID:       uuid.New().String(),
		State:    s.defaults,
		Pages:    view.PageState{Discipline: view.All, PageSize: s.defaults.PageSize},
		Created:  now,
		LastSeen: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return *sess
}

// Get returns the session and marks it as used.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	return *sess, nil
}

// Resolve returns the session for id, creating a new one when id is empty,
// unknown or expired. created reports whether a new session was made.
func (s *Store) Resolve(id string) (sess Session, created bool) {
	if id != "" {
		if got, err := s.Get(id); err == nil {
			return got, false
		}
	}
	return s.Create(), true
}

// Update applies fn to the session under the store lock.
func (s *Store) Update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	fn(sess)
	sess.ID = id
	return *sess, nil
}

// Delete removes a session. Unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired sessions removed", "count", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) lookupLocked(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	sess.LastSeen = now
	return sess, nil
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastSeen) > s.ttl
}

// IDFromRequest reads the session ID from the header, then the cookie.
func IDFromRequest(r *http.Request) string {
	if id := r.Header.Get(HeaderName); id != "" {
		return id
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetCookie attaches the session ID to the response as a cookie and header.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	w.Header().Set(HeaderName, id)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type idKey struct{}

// WithID returns a context carrying the session ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// IDFrom returns the session ID stored in ctx, or "".
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
