// Package kafka publishes order lifecycle events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config holds the producer settings.
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// OrderEventProducer implements ports.TrackingEventPublisher. Events of one
// order share the message key, so they land on one partition in order.
type OrderEventProducer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewOrderEventProducer creates a producer writing synchronously to cfg.Topic.
func NewOrderEventProducer(cfg Config, logger *slog.Logger) *OrderEventProducer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Async:                  false,
	}
	return newOrderEventProducer(writer, cfg.Topic, logger)
}

func newOrderEventProducer(writer messageWriter, topic string, logger *slog.Logger) *OrderEventProducer {
	return &OrderEventProducer{
		writer: writer,
		topic:  topic,
		logger: logger.With("component", "kafka-producer", "topic", topic),
	}
}

// orderEventMessage is the JSON value of a message.
type orderEventMessage struct {
	Type            string    `json:"type"`
	OrderID         string    `json:"orderId"`
	StageIndex      int       `json:"stageIndex"`
	StageName       string    `json:"stageName"`
	ProgressPercent int       `json:"progressPercent"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Publish writes all events in one batch.
func (p *OrderEventProducer) Publish(ctx context.Context, events ...tracking.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	err := p.writer.WriteMessages(ctx, messages...)
	result := metrics.Result(err)
	for _, e := range events {
		metrics.EventsPublishedTotal.WithLabelValues(string(e.Type), result).Inc()
	}
	if err != nil {
		return fmt.Errorf("failed to publish %d events to topic %s: %w", len(events), p.topic, err)
	}

	p.logger.DebugContext(ctx, "Published order events", "count", len(events))
	return nil
}

// Close flushes pending messages and releases connections.
func (p *OrderEventProducer) Close() error {
	if err := p.writer.Close(); err != nil {
		return errors.Join(errors.New("failed to close kafka writer"), err)
	}
	return nil
}

func toMessage(e tracking.Event) (kafka.Message, error) {
	data, err := json.Marshal(orderEventMessage{
		Type:            string(e.Type),
		OrderID:         e.OrderID.String(),
		StageIndex:      e.StageIndex,
		StageName:       e.StageName,
		ProgressPercent: e.ProgressPercent,
		Status:          e.Status.String(),
		OccurredAt:      e.OccurredAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: e.OccurredAt,
	}, nil
}
