// Package web serves the scenario explorer over HTTP: a JSON API plus an
// embedded browser renderer. Each browser gets its own session.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"pollscape/internal/polls"
	"pollscape/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cookieName         = "pollscape_session"
	// sessionTTL is how long an idle browser session is kept.
	sessionTTL         = 2 * time.Hour
	defaultMaxSessions = 256
)

// Options configure the HTTP server.
type Options struct {
	Addr    string
	Session session.Options
	// MaxSessions caps live browser sessions; the least recently used one
	// is evicted first. 0 selects 256.
	MaxSessions int
	// OnListen is called with the base URL once the listener is bound.
	OnListen func(url string)
}

type entry struct {
	session  *session.Session
	lastSeen time.Time
}

// Server holds one session per browser cookie.
type Server struct {
	parties []polls.PartyPoll
	opts    Options
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewServer creates a server that samples from parties.
func NewServer(parties []polls.PartyPoll, opts Options) *Server {
	return &Server{
		parties:  parties,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/poll", s.handlePoll)
	mux.HandleFunc("GET /api/view", s.withSession(s.handleView))
	mux.HandleFunc("GET /api/coalitions", s.withSession(s.handleCoalitions))
	mux.HandleFunc("GET /api/summary", s.withSession(s.handleSummary))
	mux.HandleFunc("GET /api/scenarios/{id}/seats", s.withSession(s.handleSeats))
	mux.HandleFunc("POST /api/scenarios", s.withSession(s.handleScenarioCount))
	mux.HandleFunc("POST /api/regenerate", s.withSession(s.handleRegenerate))
	mux.HandleFunc("POST /api/task", s.withSession(s.handleTask))
	mux.HandleFunc("POST /api/selection", s.withSession(s.handleSelection))
	mux.HandleFunc("POST /api/variant", s.withSession(s.handleVariant))
	mux.HandleFunc("GET /app.js", s.handleScript)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := baseURL(ln.Addr())
	log.Info().Str("url", url).Msg("HTTP server listening")
	if s.opts.OnListen != nil {
		s.opts.OnListen(url)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func baseURL(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || tcp.IP.IsUnspecified() {
		port := 0
		if ok {
			port = tcp.Port
		}
		return fmt.Sprintf("http://localhost:%d", port)
	}
	return "http://" + tcp.String()
}

// sessionFor returns the caller's session, creating one (and a cookie) on
// first contact. The population is drawn outside the lock.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(cookieName); err == nil {
		if sess := s.lookup(c.Value); sess != nil {
			return sess, nil
		}
	}

	sess, err := session.New(s.parties, s.opts.Session)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()

	s.mu.Lock()
	now := s.now()
	s.pruneLocked(now)
	for len(s.sessions) >= s.maxSessions() {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{session: sess, lastSeen: now}
	active := len(s.sessions)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Debug().Str("session", id).Int("active", active).Msg("Session created")
	return sess, nil
}

func (s *Server) lookup(id string) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = now
	return e.session
}

func (s *Server) pruneLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > sessionTTL {
			delete(s.sessions, id)
			log.Debug().Str("session", id).Msg("Pruned idle session")
		}
	}
}

func (s *Server) evictOldestLocked() {
	oldest := ""
	var seen time.Time
	for id, e := range s.sessions {
		if oldest == "" || e.lastSeen.Before(seen) {
			oldest, seen = id, e.lastSeen
		}
	}
	delete(s.sessions, oldest)
	log.Debug().Str("session", oldest).Msg("Evicted least recently used session")
}

func (s *Server) maxSessions() int {
	if s.opts.MaxSessions > 0 {
		return s.opts.MaxSessions
	}
	return defaultMaxSessions
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessionFor(w, r)
		if err != nil {
			writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}
