package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"

	"github.com/segmentio/kafka-go"
)

// Producer publishes order events to the notification topic. Orders are
// keyed by id so redeliveries of the same order land on the same partition.
type Producer struct {
	writer writer
	topic  string
}

// writer is the subset of kafka.Writer the producer uses; swapped in tests.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

// PublishOrderCreated satisfies the order service's Publisher.
func (p *Producer) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	return p.Publish(ctx, o.ID, EventFromOrder(o))
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
