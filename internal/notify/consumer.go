package notify

import (
	"context"
	"encoding/json"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer reads order events from the notification topic. Delivery is
// at-least-once: a message is committed only after the handler returns nil.
type Consumer struct {
	reader  reader
	topic   string
	groupID string
}

// reader is the subset of kafka.Reader the consumer uses; swapped in tests.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ConsumerOption func(*kafka.ReaderConfig)

func WithStartOffset(offset int64) ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.StartOffset = offset
	}
}

func NewConsumer(brokers []string, topic, groupID string, opts ...ConsumerOption) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer{
		reader:  kafka.NewReader(cfg),
		topic:   topic,
		groupID: groupID,
	}
}

// Consume fetches messages and hands the payload to handler until the
// context is cancelled or the reader fails.
func (c *Consumer) Consume(ctx context.Context, handler func(ctx context.Context, payload []byte) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg.Value); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// AlertHandler renders each order event as an admin alert: the toast line
// plus the two-tone chime, both written through the structured log. Display
// is best-effort, so a payload that cannot be decoded is logged and skipped
// rather than redelivered forever.
func AlertHandler() func(ctx context.Context, payload []byte) error {
	return func(ctx context.Context, payload []byte) error {
		log := logger.FromCtx(ctx).With(zap.String("layer", "notify"))

		var event OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Warn("skipping undecodable order event", zap.Error(err))
			return nil
		}

		tones := AlertTones()
		log.Info(event.AlertText(),
			zap.String("order_id", event.OrderID),
			zap.Int64("total", event.Total),
			zap.Int32("item_count", event.ItemCount),
			zap.Any("tones", tones),
		)
		return nil
	}
}
