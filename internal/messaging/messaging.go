package messaging

import "context"

const (
	TopicOrdersPlaced    = "orders.placed"
	TopicPaymentsSettled = "payments.settled"
	TopicSupportReplied  = "support.replied"
)

// Publisher publishes events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Subscriber consumes a topic until the context is cancelled.
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error)
}
