package bus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBus carries the five logical channels over Kafka topics. Each
// actor gets its own KafkaBus with its own consumer group, so fan-out
// topics (catalog.snapshot, trend.events) reach every actor while queue
// topics keep one consumer per group.
type KafkaBus struct {
	brokers []string
	group   string
	logger  *zap.Logger

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

var _ Bus = (*KafkaBus)(nil)

func NewKafkaBus(brokers []string, group string, logger *zap.Logger) *KafkaBus {
	return &KafkaBus{
		brokers: brokers,
		group:   group,
		logger:  logger,
		writers: make(map[string]*kafka.Writer),
	}
}

func (b *KafkaBus) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.writer(topic).WriteMessages(ctx, kafka.Message{Value: payload})
}

func (b *KafkaBus) writer(topic string) *kafka.Writer {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, ok := b.writers[topic]
	if !ok {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(b.brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		b.writers[topic] = w
	}
	return w
}

func (b *KafkaBus) Subscribe(topic string) Subscription {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  b.brokers,
		Topic:    topic,
		GroupID:  b.group + "." + topic,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
	return &kafkaSub{r: r, logger: b.logger}
}

func (b *KafkaBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var first error
	for _, w := range b.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.writers = make(map[string]*kafka.Writer)
	return first
}

type kafkaSub struct {
	r      *kafka.Reader
	logger *zap.Logger
}

func (s *kafkaSub) Receive(timeout time.Duration) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	m, err := s.r.ReadMessage(ctx)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			s.logger.Warn("kafka receive failed", zap.Error(err))
		}
		return nil, false
	}
	return m.Value, true
}

func (s *kafkaSub) Close() {
	if err := s.r.Close(); err != nil {
		s.logger.Warn("kafka reader close failed", zap.Error(err))
	}
}
