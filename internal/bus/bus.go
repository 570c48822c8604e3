package bus

import (
	"context"
	"strconv"
	"time"
)

// Topic names for the five logical channels between the exchange, the
// brokers and the users. Payloads are UTF-8 JSON.
const (
	TopicCatalog  = "catalog.snapshot"
	TopicFills    = "fills.report"
	TopicTrend    = "trend.events"
	TopicClosures = "closures.report"

	topicOrdersPrefix = "orders.inbound."
)

// OrderTopic is the per-broker inbound order queue.
func OrderTopic(brokerID int) string {
	return topicOrdersPrefix + strconv.Itoa(brokerID)
}

// Publisher sends one payload to a topic. Delivery is best-effort: the
// core tolerates lost reports and never retries internally.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Subscription is a single consumer's view of a topic. Receive blocks for
// at most timeout and reports ok=false on timeout or after Close; that
// timeout is the suspension primitive the round protocol is built on.
type Subscription interface {
	Receive(timeout time.Duration) ([]byte, bool)
	Close()
}

// Bus is the full transport boundary handed to an actor. Connection
// lifecycle, topic declaration and redelivery are the implementation's
// concern, not the core's.
type Bus interface {
	Publisher
	Subscribe(topic string) Subscription
	Close() error
}
