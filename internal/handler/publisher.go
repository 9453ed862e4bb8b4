package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/config"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.EventsTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

// PublishStatusChanged emits one event keyed by order id, so events of one
// order stay ordered within a partition.
func (p *kafkaPublisher) PublishStatusChanged(ctx context.Context, res entities.TransitionResult) error {
	event := StatusChangedEntityToJSON(res, uuid.NewString(), time.Now())

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	})
	if err != nil {
		eventsFailed.Inc()
		return fmt.Errorf("failed to write event: %w", err)
	}

	eventsPublished.Inc()
	p.logger.Debug("status change published", slog.String("event_id", event.EventID), slog.String("order_id", event.OrderID))
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher drops events, for deployments without Kafka.
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishStatusChanged(context.Context, entities.TransitionResult) error {
	return nil
}
