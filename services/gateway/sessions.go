package gateway

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/events"
	"github.com/ghuser/pressroom/pkg/logger"
	postevents "github.com/ghuser/pressroom/services/post/domain/events"
)

// ErrBusClosed is returned by Open after the bus has shut down.
var ErrBusClosed = errors.New("event bus closed")

// Frame is the wire format pushed to streaming clients: the topic the event
// was published on plus the event payload verbatim.
type Frame struct {
	Topic string          `json:"topic"`
	Event json.RawMessage `json:"event"`
}

// sessionConn is the subset of *websocket.Conn a session needs. Tests
// substitute an in-memory implementation.
type sessionConn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Session is one authenticated streaming connection. It holds one bus
// subscription per post change topic and forwards every delivered event to
// the client as a Frame. All writes go through a single pump goroutine.
type Session struct {
	ID      string
	Subject auth.Subject

	log  logger.Logger
	bus  *events.Bus
	conn sessionConn
	subs []*events.Subscription

	done    chan struct{}
	once    sync.Once
	manager *SessionManager
}

// Close tears the session down deterministically: every bus subscription is
// removed synchronously, so once Close returns no further deliveries are
// attempted. Safe to call from any goroutine, any number of times.
func (s *Session) Close() {
	s.once.Do(func() {
		for _, sub := range s.subs {
			s.bus.Unsubscribe(sub)
		}
		close(s.done)
		_ = s.conn.Close()
		if s.manager != nil {
			s.manager.remove(s.ID)
		}
		s.log.Debug("session closed", "session_id", s.ID, "subject_id", s.Subject.ID)
	})
}

// forward drains one subscription into the shared outbound channel. It exits
// when the subscription channel is closed by Unsubscribe or Bus.Close.
func (s *Session) forward(sub *events.Subscription, out chan<- Frame) {
	for msg := range sub.C() {
		select {
		case out <- Frame{Topic: sub.Topic, Event: json.RawMessage(msg.Payload)}:
		case <-s.done:
			return
		}
	}
}

// writePump is the session's single writer. A failed write means the client
// is gone; the session closes itself.
func (s *Session) writePump(out <-chan Frame) {
	for {
		select {
		case frame := <-out:
			if err := s.conn.WriteJSON(frame); err != nil {
				s.log.Debug("session write failed", "session_id", s.ID, "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// readPump discards inbound traffic; its only job is to notice the peer
// closing the connection.
func (s *Session) readPump() {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.Close()
			return
		}
	}
}

// SessionManager tracks live streaming sessions so shutdown can close them
// all and tests can observe the population.
type SessionManager struct {
	log logger.Logger
	bus *events.Bus

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager returns an empty manager bound to the given bus.
func NewSessionManager(log logger.Logger, bus *events.Bus) *SessionManager {
	return &SessionManager{
		log:      log,
		bus:      bus,
		sessions: make(map[string]*Session),
	}
}

// Open registers a new session for an already-authenticated subject: it
// subscribes to every post change topic and starts the forwarding pumps.
// Returns ErrBusClosed when the bus is shutting down.
func (m *SessionManager) Open(conn sessionConn, subject auth.Subject) (*Session, error) {
	s := &Session{
		ID:      watermill.NewUUID(),
		Subject: subject,
		log:     m.log,
		bus:     m.bus,
		conn:    conn,
		done:    make(chan struct{}),
		manager: m,
	}

	for _, topic := range postevents.Topics {
		sub := m.bus.Subscribe(topic)
		if sub == nil {
			for _, acquired := range s.subs {
				m.bus.Unsubscribe(acquired)
			}
			_ = conn.Close()
			return nil, ErrBusClosed
		}
		s.subs = append(s.subs, sub)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	out := make(chan Frame, len(s.subs))
	for _, sub := range s.subs {
		go s.forward(sub, out)
	}
	go s.writePump(out)
	go s.readPump()

	m.log.Debug("session opened", "session_id", s.ID, "subject_id", subject.ID)
	return s, nil
}

// Count reports the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every live session. Used during shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.Unlock()

	for _, s := range open {
		s.Close()
	}
}

func (m *SessionManager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
