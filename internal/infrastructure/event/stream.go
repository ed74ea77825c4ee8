package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrTooManySubscribers is returned by Subscribe when the connection
// limit is reached.
var ErrTooManySubscribers = errors.New("event stream subscriber limit reached")

// StreamMessage is the wire shape delivered to live event subscribers
type StreamMessage struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	UserID    uuid.UUID `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// subscriber is one connected stream consumer
type subscriber struct {
	id uuid.UUID
	ch chan StreamMessage
}

// Broadcaster fans domain events out to live stream subscribers. It
// registers on the bus as a wildcard handler; a slow subscriber drops
// messages rather than blocking publication.
type Broadcaster struct {
	mu             sync.RWMutex
	subscribers    map[uuid.UUID]*subscriber
	bufferSize     int
	maxSubscribers int
	logger         *zap.Logger
}

// NewBroadcaster creates a broadcaster with the given per-subscriber
// channel buffer size and connection limit.
func NewBroadcaster(bufferSize, maxSubscribers int, logger *zap.Logger) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if maxSubscribers <= 0 {
		maxSubscribers = 256
	}
	return &Broadcaster{
		subscribers:    make(map[uuid.UUID]*subscriber),
		bufferSize:     bufferSize,
		maxSubscribers: maxSubscribers,
		logger:         logger,
	}
}

// Handle implements shared.EventHandler: every published domain event
// is converted to its wire shape and fanned out.
func (b *Broadcaster) Handle(_ context.Context, event shared.DomainEvent) error {
	msg := StreamMessage{
		Type:      event.EventType(),
		Data:      event.EventData(),
		UserID:    event.ActorID(),
		Timestamp: event.OccurredAt(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub.ch <- msg:
		default:
			b.logger.Warn("Stream subscriber buffer full, dropping event",
				zap.String("subscriber_id", sub.id.String()),
				zap.String("event_type", msg.Type))
		}
	}
	return nil
}

// EventTypes returns nil: the broadcaster receives every event type
func (b *Broadcaster) EventTypes() []string {
	return nil
}

// Subscribe registers a new stream consumer and returns its ID and
// receive channel. The caller must call Unsubscribe when done.
func (b *Broadcaster) Subscribe() (uuid.UUID, <-chan StreamMessage, error) {
	sub := &subscriber{
		id: uuid.New(),
		ch: make(chan StreamMessage, b.bufferSize),
	}

	b.mu.Lock()
	if len(b.subscribers) >= b.maxSubscribers {
		b.mu.Unlock()
		b.logger.Warn("Stream subscriber limit reached",
			zap.Int("max_subscribers", b.maxSubscribers))
		return uuid.Nil, nil, ErrTooManySubscribers
	}
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	b.logger.Debug("Stream subscriber connected", zap.String("subscriber_id", sub.id.String()))
	return sub.id, sub.ch, nil
}

// Unsubscribe removes a stream consumer and closes its channel
func (b *Broadcaster) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	sub, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
	}
	b.mu.Unlock()

	if ok {
		close(sub.ch)
		b.logger.Debug("Stream subscriber disconnected", zap.String("subscriber_id", id.String()))
	}
}

// SubscriberCount returns the number of connected subscribers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

var _ shared.EventHandler = (*Broadcaster)(nil)
