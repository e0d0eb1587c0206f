package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/formnav/internal/core"
	"github.com/JonMunkholm/formnav/internal/logging"
	"github.com/JonMunkholm/formnav/internal/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is one browser's navigator. Its methods serialize access, so
// concurrent requests from the same browser are safe.
type Session struct {
	ID string

	mu       sync.Mutex
	nav      *core.Navigator
	lastSeen time.Time
}

// Do runs fn with exclusive access to the navigator.
func (s *Session) Do(fn func(nav *core.Navigator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.nav)
}

// View returns the current view.
func (s *Session) View() core.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.View()
}

// NavigatorFactory builds the navigator of a new session, loading records
// once.
type NavigatorFactory func(ctx context.Context) *core.Navigator

// SessionStore keeps sessions in memory. Sessions idle for longer than the
// idle timeout are dropped by Sweep; when the store is full the least
// recently used session is evicted.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	max      int
	factory  NavigatorFactory
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewSessionStore creates a store.
func NewSessionStore(idle time.Duration, max int, factory NavigatorFactory, m *metrics.Metrics) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		idle:     idle,
		max:      max,
		factory:  factory,
		metrics:  m,
		now:      time.Now,
	}
}

// Get returns the live session for id and marks it as used.
func (st *SessionStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := st.now()
	if now.Sub(sess.lastSeen) > st.idle {
		st.remove(id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Create starts a new session. The factory runs outside the store lock
// since loading records may be slow.
func (st *SessionStore) Create(ctx context.Context) *Session {
	sess := &Session{
		ID:  uuid.NewString(),
		nav: st.factory(ctx),
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.max > 0 && len(st.sessions) >= st.max {
		st.evictOldest()
	}
	sess.lastSeen = st.now()
	st.sessions[sess.ID] = sess
	st.metrics.SetSessions(len(st.sessions))

	logging.FromContext(ctx).Debug("session created", "session_id", sess.ID, "sessions", len(st.sessions))
	return sess
}

// Delete drops a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.remove(id)
}

// Len returns the number of stored sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes idle sessions and reports how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.lastSeen) > st.idle {
			st.remove(id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				logging.FromContext(ctx).Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// remove must be called with st.mu held.
func (st *SessionStore) remove(id string) {
	delete(st.sessions, id)
	st.metrics.SetSessions(len(st.sessions))
}

// evictOldest must be called with st.mu held.
func (st *SessionStore) evictOldest() {
	var oldest *Session
	for _, sess := range st.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		st.remove(oldest.ID)
	}
}

// session returns the caller's session. With create set, a missing or
// expired session is replaced by a new one and the cookie is (re)issued;
// otherwise ErrSessionNotFound is returned.
func (s *Server) session(w http.ResponseWriter, r *http.Request, create bool) (*Session, error) {
	if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		if sess, err := s.sessions.Get(c.Value); err == nil {
			return sess, nil
		}
	}
	if !create {
		return nil, ErrSessionNotFound
	}

	sess := s.sessions.Create(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
