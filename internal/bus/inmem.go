package bus

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const subscriptionBuffer = 256

var errBusClosed = errors.New("bus: closed")

// InMemoryBus fans every published payload out to all subscriptions on
// the topic. Publishing never blocks: a subscriber whose buffer is full
// loses the message, which is within the transport contract.
type InMemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]*memSub
	closed bool
	logger *zap.Logger
}

var _ Bus = (*InMemoryBus)(nil)

func NewInMemoryBus(logger *zap.Logger) *InMemoryBus {
	return &InMemoryBus{
		subs:   make(map[string][]*memSub),
		logger: logger,
	}
}

func (b *InMemoryBus) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return errBusClosed
	}
	for _, s := range b.subs[topic] {
		select {
		case s.ch <- payload:
		default:
			b.logger.Warn("subscriber buffer full, message dropped",
				zap.String("topic", topic))
		}
	}
	return nil
}

func (b *InMemoryBus) Subscribe(topic string) Subscription {
	s := &memSub{
		ch:   make(chan []byte, subscriptionBuffer),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.Close()
		return s
	}
	b.subs[topic] = append(b.subs[topic], s)
	return s
}

func (b *InMemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, s := range subs {
			s.Close()
		}
	}
	b.subs = nil
	return nil
}

type memSub struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (s *memSub) Receive(timeout time.Duration) ([]byte, bool) {
	// Buffered messages stay readable after Close; drain them first.
	select {
	case p := <-s.ch:
		return p, true
	default:
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case p := <-s.ch:
		return p, true
	case <-s.done:
		return nil, false
	case <-t.C:
		return nil, false
	}
}

func (s *memSub) Close() {
	s.once.Do(func() { close(s.done) })
}
