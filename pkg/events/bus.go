// Package events provides the in-process pub/sub hub that fans change
// notifications out to live subscribers.
//
// Delivery semantics:
//   - Broadcast: every subscriber registered on a topic at the moment of
//     Publish receives the message. Subscribers registered afterwards never
//     see it — the bus keeps no history and replays nothing.
//   - Isolation: delivery to each subscriber is independent. A slow subscriber
//     whose buffer is full has the message dropped and counted as a delivery
//     fault; it never blocks or fails delivery to other subscribers.
//   - Ordering: FIFO per topic relative to publish order from one goroutine.
//     No ordering is guaranteed across topics.
//
// Memory use is bounded by the number of live subscriptions, not by event
// volume. Durability across restarts and multi-process fan-out are
// deliberately out of scope; reconnecting clients re-read current state.
package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ghuser/pressroom/pkg/logger"
)

// DefaultSendBuffer is the per-subscription channel capacity used when the
// configured buffer is zero or negative.
const DefaultSendBuffer = 16

var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pressroom_bus_published_total",
		Help: "Messages published to the in-process event bus, by topic.",
	}, []string{"topic"})

	droppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pressroom_bus_dropped_total",
		Help: "Messages dropped because a subscriber's buffer was full, by topic.",
	}, []string{"topic"})
)

// Subscription is the explicit handle returned by Subscribe. Hold it to
// receive messages via C and to deterministically tear down via Unsubscribe.
type Subscription struct {
	ID    string
	Topic string
	ch    chan *message.Message
}

// C returns the channel messages are delivered on. The channel is closed by
// Unsubscribe and by Bus.Close; receivers should range over it.
func (s *Subscription) C() <-chan *message.Message {
	return s.ch
}

// registry holds the subscriptions of one topic. Its lock serializes
// subscribe, unsubscribe, and publish-iterate for that topic only; distinct
// topics never contend.
type registry struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

// Bus is an in-process broadcast pub/sub hub keyed by topic name.
// The zero value is not usable; construct with NewBus.
type Bus struct {
	log    logger.Logger
	buffer int

	mu     sync.RWMutex // guards topics map and closed flag
	topics map[string]*registry
	closed bool
}

// NewBus returns a Bus whose subscriptions buffer up to sendBuffer messages
// each before deliveries to that subscriber are dropped.
func NewBus(log logger.Logger, sendBuffer int) *Bus {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Bus{
		log:    log,
		buffer: sendBuffer,
		topics: make(map[string]*registry),
	}
}

// Subscribe registers interest in topic and returns the handle required for
// Unsubscribe. Returns nil after the bus has been closed.
//
// The bus lock is held across the registry insert so a concurrent Close
// cannot slip between the closed check and the insert and leave the new
// subscription's channel orphaned (never closed). Lock order matches Close:
// bus lock, then registry lock.
func (b *Bus) Subscribe(topic string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	reg, ok := b.topics[topic]
	if !ok {
		reg = &registry{subs: make(map[string]*Subscription)}
		b.topics[topic] = reg
	}

	sub := &Subscription{
		ID:    watermill.NewUUID(),
		Topic: topic,
		ch:    make(chan *message.Message, b.buffer),
	}

	reg.mu.Lock()
	reg.subs[sub.ID] = sub
	reg.mu.Unlock()
	return sub
}

// Unsubscribe removes sub from its topic and closes its channel. Once it
// returns, no further deliveries are attempted on the subscription. Calling
// it twice, with nil, or after Close is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.RLock()
	reg := b.topics[sub.Topic]
	b.mu.RUnlock()
	if reg == nil {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.subs[sub.ID]; !ok {
		return
	}
	delete(reg.subs, sub.ID)
	close(sub.ch)
}

// Publish delivers msg to every subscriber currently registered on topic.
// Delivery is a non-blocking send per subscriber: a full buffer means the
// message is dropped for that subscriber, logged, and counted — the fault is
// never propagated to the publisher or to other subscribers.
func (b *Bus) Publish(topic string, msg *message.Message) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	reg := b.topics[topic]
	b.mu.RUnlock()

	publishedTotal.WithLabelValues(topic).Inc()
	if reg == nil {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, sub := range reg.subs {
		select {
		case sub.ch <- msg:
		default:
			droppedTotal.WithLabelValues(topic).Inc()
			b.log.Warn("event dropped for slow subscriber",
				"topic", topic,
				"subscription_id", sub.ID,
				"message_id", msg.UUID,
			)
		}
	}
}

// SubscriberCount reports the number of live subscriptions on topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	reg := b.topics[topic]
	b.mu.RUnlock()
	if reg == nil {
		return 0
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.subs)
}

// Close tears down every subscription and rejects further subscribes.
// Publish and Unsubscribe after Close are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	for _, reg := range b.topics {
		reg.mu.Lock()
		for id, sub := range reg.subs {
			delete(reg.subs, id)
			close(sub.ch)
		}
		reg.mu.Unlock()
	}
	b.topics = make(map[string]*registry)
}

// NewMessage wraps payload as a JSON watermill message with a fresh UUID.
func NewMessage(payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return message.NewMessage(watermill.NewUUID(), data), nil
}
