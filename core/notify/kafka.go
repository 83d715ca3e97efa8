// Package notify delivers change notifications to a message broker.
package notify

import (
	"context"
	"time"

	"github.com/relabs-tech/pagemap/core"
	"github.com/relabs-tech/pagemap/core/logger"
	"github.com/segmentio/kafka-go"
)

// Kafka publishes notifications to a Kafka topic. Messages are keyed by
// resource, so all changes of one resource type land on the same partition
// in order. Writes are asynchronous and never block the request.
type Kafka struct {
	writer *kafka.Writer
}

var _ core.Notifier = (*Kafka)(nil)

// NewKafka returns a notifier writing to topic on brokers
func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Default().WithError(err).Errorf("cannot deliver %d notifications", len(messages))
			}
		},
	}
	return &Kafka{writer: w}
}

// Notify implements core.Notifier
func (k *Kafka) Notify(resource string, operation core.Operation, payload []byte) {
	msg := kafka.Message{
		Key:   []byte(resource),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "resource", Value: []byte(resource)},
			{Key: "operation", Value: []byte(operation)},
		},
	}
	// async writer, the error only covers a closed writer
	if err := k.writer.WriteMessages(context.Background(), msg); err != nil {
		logger.Default().WithError(err).Errorf("cannot queue notification %s %s", operation, resource)
	}
}

// Close flushes pending notifications and closes the writer
func (k *Kafka) Close() error {
	return k.writer.Close()
}
