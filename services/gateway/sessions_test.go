package gateway

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/events"
	"github.com/ghuser/pressroom/pkg/logger"
	postevents "github.com/ghuser/pressroom/services/post/domain/events"
)

type fakeConn struct {
	mu         sync.Mutex
	frames     []Frame
	writeErr   error
	writeBlock chan struct{} // non-nil: WriteJSON blocks until closed

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	if c.writeBlock != nil {
		<-c.writeBlock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	if frame, ok := v.(Frame); ok {
		c.frames = append(c.frames, frame)
	}
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	<-c.closed
	return 0, nil, errors.New("use of closed connection")
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestManager() (*SessionManager, *events.Bus) {
	bus := events.NewBus(logger.NewNop(), 16)
	return NewSessionManager(logger.NewNop(), bus), bus
}

func TestOpen_SubscribesEveryTopic(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	_, err := m.Open(newFakeConn(), auth.Subject{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, topic := range postevents.Topics {
		if n := bus.SubscriberCount(topic); n != 1 {
			t.Errorf("topic %s: %d subscribers, want 1", topic, n)
		}
	}
	if m.Count() != 1 {
		t.Errorf("Count: %d, want 1", m.Count())
	}
}

func TestPublishedEventReachesSession(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	conn := newFakeConn()
	if _, err := m.Open(conn, auth.Subject{ID: uuid.New()}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	evt := postevents.NewChangeEvent(postevents.KindCreated, uuid.New(), "hello")
	msg, err := events.NewMessage(evt)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	bus.Publish(postevents.TopicPostCreated, msg)

	waitFor(t, "frame delivery", func() bool { return len(conn.Frames()) == 1 })

	frame := conn.Frames()[0]
	if frame.Topic != postevents.TopicPostCreated {
		t.Errorf("topic: %q", frame.Topic)
	}
	if string(frame.Event) != string(msg.Payload) {
		t.Errorf("event payload not forwarded verbatim: %s", frame.Event)
	}
}

func TestClose_UnsubscribesSynchronously(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	conn := newFakeConn()
	s, err := m.Open(conn, auth.Subject{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	s.Close()

	for _, topic := range postevents.Topics {
		if n := bus.SubscriberCount(topic); n != 0 {
			t.Errorf("topic %s: %d subscribers after Close, want 0", topic, n)
		}
	}
	if m.Count() != 0 {
		t.Errorf("Count after Close: %d, want 0", m.Count())
	}

	// Publishing after Close must not reach the session.
	msg, _ := events.NewMessage(postevents.NewChangeEvent(postevents.KindCreated, uuid.New(), "late"))
	bus.Publish(postevents.TopicPostCreated, msg)
	time.Sleep(20 * time.Millisecond)
	if len(conn.Frames()) != 0 {
		t.Errorf("frames delivered after Close: %d", len(conn.Frames()))
	}
}

func TestClose_IsIdempotent(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	s, err := m.Open(newFakeConn(), auth.Subject{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
	s.Close()

	if m.Count() != 0 {
		t.Errorf("Count: %d, want 0", m.Count())
	}
}

func TestWriteFailureClosesSession(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	conn := newFakeConn()
	conn.writeErr = errors.New("broken pipe")
	if _, err := m.Open(conn, auth.Subject{ID: uuid.New()}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	msg, _ := events.NewMessage(postevents.NewChangeEvent(postevents.KindUpdated, uuid.New(), "x"))
	bus.Publish(postevents.TopicPostUpdated, msg)

	waitFor(t, "session teardown after write failure", func() bool { return m.Count() == 0 })
}

func TestCloseAll(t *testing.T) {
	m, bus := newTestManager()
	defer bus.Close()

	for i := 0; i < 3; i++ {
		if _, err := m.Open(newFakeConn(), auth.Subject{ID: uuid.New()}); err != nil {
			t.Fatalf("Open: %v", err)
		}
	}

	m.CloseAll()

	if m.Count() != 0 {
		t.Errorf("Count after CloseAll: %d, want 0", m.Count())
	}
	for _, topic := range postevents.Topics {
		if n := bus.SubscriberCount(topic); n != 0 {
			t.Errorf("topic %s: %d subscribers after CloseAll", topic, n)
		}
	}
}

func TestOpen_AfterBusClose(t *testing.T) {
	m, bus := newTestManager()
	bus.Close()

	if _, err := m.Open(newFakeConn(), auth.Subject{ID: uuid.New()}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("expected ErrBusClosed, got %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count: %d, want 0", m.Count())
	}
}

func TestSlowSessionDoesNotStallOthers(t *testing.T) {
	bus := events.NewBus(logger.NewNop(), 1)
	defer bus.Close()
	m := NewSessionManager(logger.NewNop(), bus)

	stuck := newFakeConn()
	stuck.writeBlock = make(chan struct{})
	defer close(stuck.writeBlock)
	healthy := newFakeConn()

	// The stuck session's writer never completes, so its bus buffer of 1
	// fills and further deliveries to it are dropped, not blocked on.
	if _, err := m.Open(stuck, auth.Subject{ID: uuid.New()}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := m.Open(healthy, auth.Subject{ID: uuid.New()}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	for i := 0; i < 5; i++ {
		msg, _ := events.NewMessage(postevents.NewChangeEvent(postevents.KindCreated, uuid.New(), "n"))
		bus.Publish(postevents.TopicPostCreated, msg)
	}

	waitFor(t, "healthy session delivery", func() bool { return len(healthy.Frames()) >= 1 })
}
