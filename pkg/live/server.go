// Package live serves navigation sessions over websockets. Clients send
// navigation intents; the server answers with state frames carrying the
// snapshot and the rendered cockpit.
package live

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/recera/mission-control/internal/clock"
	"github.com/recera/mission-control/pkg/renderer/html"
	"github.com/recera/mission-control/pkg/vango/vdom"
	"github.com/recera/mission-control/pkg/zoom"
)

//go:embed client.js
var clientScript string

// RenderFunc builds the cockpit markup for a snapshot
type RenderFunc func(zoom.Snapshot) *vdom.VNode

// CookieName holds the session id between page loads
const CookieName = "mc-session"

type options struct {
	logger       *slog.Logger
	clock        clock.Clock
	timing       zoom.Timing
	maxAge       time.Duration
	cleanupEvery time.Duration
	title        string
	stylesheet   string
	checkOrigin  func(*http.Request) bool
}

// Option configures a Server
type Option func(*options)

// WithLogger sets the server logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock for transitions and session expiry
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTiming sets the transition timing of new sessions
func WithTiming(t zoom.Timing) Option {
	return func(o *options) { o.timing = t }
}

// WithMaxAge sets how long an idle session is kept
func WithMaxAge(d time.Duration) Option {
	return func(o *options) { o.maxAge = d }
}

// WithCleanupInterval sets how often expired sessions are swept
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) { o.cleanupEvery = d }
}

// WithPage sets the page title and stylesheet
func WithPage(title, stylesheet string) Option {
	return func(o *options) {
		o.title = title
		o.stylesheet = stylesheet
	}
}

// WithCheckOrigin sets the websocket origin check
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(o *options) { o.checkOrigin = fn }
}

// Server owns the live sessions
type Server struct {
	upgrader websocket.Upgrader
	render   RenderFunc
	opts     options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewServer creates a live server rendering frames with render
func NewServer(render RenderFunc, opts ...Option) *Server {
	o := options{
		logger:       slog.Default(),
		clock:        clock.Real(),
		timing:       zoom.DefaultTiming(),
		maxAge:       24 * time.Hour,
		cleanupEvery: 5 * time.Minute,
		title:        "Mission Control",
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", "live")

	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     o.checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		render:   render,
		opts:     o,
		sessions: make(map[string]*Session),
	}
}

// NewSession creates and registers a session at the initial state
func (s *Server) NewSession() *Session {
	sess := newSession(uuid.NewString(), &s.opts, s.render)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.logger.Info("session created")
	return sess
}

// Session returns the session with the given id
func (s *Server) Session(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// SessionCount returns the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// GetOrCreateSession returns the session named by the request cookie, or
// a new one whose id is set as the cookie
func (s *Server) GetOrCreateSession(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if sess, err := s.Session(cookie.Value); err == nil {
			sess.touch()
			return sess
		}
	}

	sess := s.NewSession()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.opts.maxAge.Seconds()),
	})
	return sess
}

// CloseSession removes and closes a session
func (s *Server) CloseSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.Close()
	sess.logger.Info("session closed")
	return nil
}

// CleanupExpired closes sessions idle for longer than the max age and
// returns how many were removed
func (s *Server) CleanupExpired() int {
	now := s.opts.clock.Now()

	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastAccess()) > s.opts.maxAge {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
		sess.logger.Info("session expired")
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done, then closes every
// session
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			if n := s.CleanupExpired(); n > 0 {
				s.opts.logger.Info("expired sessions removed", "count", n)
			}
		}
	}
}

// Refresh re-renders every session at its current state, for when the
// data behind the views changes
func (s *Server) Refresh() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	for _, sess := range sessions {
		sess.Refresh()
	}
}

// Close closes every session
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

// Handler returns the HTTP routes of the live surface
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /live/{session}", s.handleLive)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.GetOrCreateSession(w, r)

	head := vdom.NewFragment(
		vdom.NewElement("meta", vdom.Props{"name": "viewport", "content": "width=device-width, initial-scale=1"}),
		vdom.If(s.opts.stylesheet != "", func() *vdom.VNode {
			return vdom.NewElement("style", nil, vdom.NewText(s.opts.stylesheet))
		}),
		vdom.NewElement("script", vdom.Props{"defer": true}, vdom.NewText(clientScript)),
	)
	body := vdom.NewElement("div", vdom.Props{
		"id":           "app",
		"data-session": sess.ID,
	}, s.render(sess.Snapshot()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.RenderDocument(w, s.opts.title, head, body); err != nil {
		sess.logger.Error("render page", "error", err)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Session(r.PathValue("session"))
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		sess.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	if err := sess.Attach(ws); err != nil {
		sess.logger.Warn("attach failed", "error", err)
		return
	}
	sess.logger.Info("client connected", "remote", r.RemoteAddr)
}
