package live

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/recera/mission-control/internal/clock"
	"github.com/recera/mission-control/pkg/renderer/html"
	"github.com/recera/mission-control/pkg/scheduler"
	"github.com/recera/mission-control/pkg/zoom"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings with this period, less than pongWait
	pingPeriod = 54 * time.Second

	sendBuffer = 256
)

// Session is one navigation session. Every controller mutation, intent or
// timer, runs on the session's loop.
type Session struct {
	ID        string
	CreatedAt time.Time

	nav    *zoom.Navigator
	loop   *scheduler.Loop
	render RenderFunc
	clock  clock.Clock
	logger *slog.Logger

	mu         sync.Mutex
	lastAccess time.Time
	conn       *connection
	closed     bool
}

// connection is one websocket attached to a session
type connection struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

func newSession(id string, o *options, render RenderFunc) *Session {
	now := o.clock.Now()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		lastAccess: now,
		loop:       scheduler.NewLoop(0),
		render:     render,
		clock:      o.clock,
		logger:     o.logger.With("session", id),
	}

	s.loop.SetErrorHandler(func(err error) {
		s.logger.Error("session task failed", "error", err)
	})
	s.loop.Start()

	s.nav = zoom.NewNavigator(
		zoom.WithClock(o.clock),
		zoom.WithTiming(o.timing),
		zoom.WithPost(s.loop.Go),
	)
	s.nav.OnChange(s.publish)
	return s
}

// Snapshot returns the current frame of the session
func (s *Session) Snapshot() zoom.Snapshot {
	return s.nav.Snapshot()
}

// HTML renders the cockpit for snap
func (s *Session) HTML(snap zoom.Snapshot) (string, error) {
	return html.RenderToString(s.render(snap))
}

// LastAccess returns when the session last saw a request or frame
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastAccess = s.clock.Now()
	s.mu.Unlock()
}

// Dispatch applies in on the session loop. A rejected intent is reported
// to the attached client.
func (s *Session) Dispatch(in Intent) error {
	s.touch()
	return s.loop.Post(func() {
		res, err := in.Apply(s.nav.Controller)
		if err != nil {
			s.sendError(err)
			return
		}
		if !res.Applied {
			s.logger.Debug("intent rejected", "op", in.Op, "reason", res.Reason)
			data, err := encodeRejected(in.Op, res.Reason)
			if err != nil {
				s.logger.Error("encode rejected frame", "error", err)
				return
			}
			s.send(data)
		}
	})
}

// Attach makes ws the session's connection, replacing any earlier one,
// and starts serving it
func (s *Session) Attach(ws *websocket.Conn) error {
	c := &connection{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ws.Close()
		return ErrSessionNotFound
	}
	old := s.conn
	s.conn = c
	s.lastAccess = s.clock.Now()
	s.mu.Unlock()

	if old != nil {
		s.logger.Info("connection replaced")
		old.close()
	}

	go s.writer(c)
	s.Refresh()
	go s.reader(c)
	return nil
}

func (s *Session) reader(c *connection) {
	defer s.detach(c)

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		// A live connection keeps the session from expiring
		s.touch()
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("unexpected close", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		in, err := DecodeIntent(data)
		if err != nil {
			s.logger.Debug("bad frame", "error", err)
			s.sendError(err)
			continue
		}
		if err := s.Dispatch(in); err != nil {
			return
		}
	}
}

func (s *Session) writer(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (s *Session) detach(c *connection) {
	c.close()
	s.mu.Lock()
	if s.conn == c {
		s.conn = nil
	}
	s.mu.Unlock()
}

// publish sends a state frame for snap to the attached connection
func (s *Session) publish(snap zoom.Snapshot) {
	markup, err := s.HTML(snap)
	if err != nil {
		s.logger.Error("render cockpit", "error", err)
		return
	}
	data, err := encodeState(snap, markup)
	if err != nil {
		s.logger.Error("encode state frame", "error", err)
		return
	}
	s.send(data)
}

// Refresh republishes the current snapshot from the session loop
func (s *Session) Refresh() {
	s.loop.Go(func() { s.publish(s.nav.Snapshot()) })
}

func (s *Session) sendError(err error) {
	data, encErr := encodeError(err)
	if encErr != nil {
		s.logger.Error("encode error frame", "error", encErr)
		return
	}
	s.send(data)
}

// send hands data to the writer without blocking the loop. Frames are
// dropped while no client is attached.
func (s *Session) send(data []byte) {
	s.mu.Lock()
	c := s.conn
	s.mu.Unlock()
	if c == nil {
		return
	}

	select {
	case c.send <- data:
	case <-c.done:
	default:
		s.logger.Warn("send buffer full, dropping frame", "bytes", len(data))
	}
}

// Close detaches the client, stops pending transitions and ends the loop
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	c := s.conn
	s.conn = nil
	s.mu.Unlock()

	if c != nil {
		c.close()
	}
	if err := s.loop.Do(s.nav.Close); err != nil {
		s.nav.Close()
	}
	s.loop.Stop()
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s (level %d)", s.ID, s.nav.State().CurrentLevel)
}
