package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events of one topic as a member of a consumer group.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

type ConsumerOption func(*kafka.ReaderConfig)

// FromLatest makes a group without committed offsets skip the backlog. Live
// listeners only care about what happens after they join.
func FromLatest() ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.StartOffset = kafka.LastOffset
	}
}

func NewConsumer(brokers []string, groupID, topic string, opts ...ConsumerOption) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		StartOffset:       kafka.FirstOffset,
		MaxWait:           time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Consumer{topic: topic, reader: kafka.NewReader(cfg)}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume passes every booking event to handle and commits its offset once
// handle returns nil, so an event is redelivered if the worker dies mid-way.
// Messages that do not decode are committed and skipped. Consume returns when
// ctx is done, the reader fails or handle returns an error.
func (c *Consumer) Consume(ctx context.Context, handle func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return fmt.Errorf("fetch from %s: %w", c.topic, err)
		}

		event, err := DecodeBookingEvent(msg)
		if err != nil {
			log.Printf("skip message %s/%d: %v", msg.Topic, msg.Partition, err)
		} else if err := handle(ctx, event); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit %s/%d@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
		}
	}
}
