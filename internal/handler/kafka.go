package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/config"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type kafkaHandler struct {
	dlq       *kafka.Writer
	reader    *kafka.Reader
	logger    *slog.Logger
	validate  *validator.Validate
	svc       Transitioner
	publisher EventPublisher
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, svc Transitioner, publisher EventPublisher) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.CommandTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate:  validator.New(),
		svc:       svc,
		publisher: publisher,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			} else {
				h.logger.Error("failed to fetch message", slog.Any("error", err))
				continue
			}
		}

		commandsInProgress.Inc()
		start := time.Now()

		// Transition retries conflicts on its own; what is left here is terminal.
		if err := h.handleCommand(ctx, m); err != nil {
			commandsFailed.WithLabelValues(failureReason(err)).Inc()
			h.logger.Error("failed to handle command",
				slog.Any("error", err),
				slog.Int64("offset", m.Offset),
				slog.String("key", string(m.Key)),
			)

			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				commandsInProgress.Dec()
				continue
			}
			commandsDLQ.Inc()
		} else {
			commandsProcessed.Inc()
		}

		commandProcessingDuration.Observe(time.Since(start).Seconds())
		commandsInProgress.Dec()

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleCommand(ctx context.Context, m kafka.Message) error {
	var cmd StatusCommand
	if err := json.Unmarshal(m.Value, &cmd); err != nil {
		return fmt.Errorf("%w: failed to unmarshal command: %w", entities.ErrInvalidArgument, err)
	}

	if err := h.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: invalid command: %w", entities.ErrInvalidArgument, err)
	}

	res, err := h.svc.Transition(ctx, entities.TransitionRequest{
		OrderID:   cmd.OrderID,
		ActorID:   cmd.ActorID,
		ActorRole: entities.Role(cmd.ActorRole),
		Target:    entities.Status(cmd.Status),
	})
	if err != nil {
		return fmt.Errorf("failed to apply command to order %s: %w", cmd.OrderID, err)
	}

	if res.Changed() {
		if err := h.publisher.PublishStatusChanged(ctx, res); err != nil {
			h.logger.Error("failed to publish status change", slog.String("order_id", cmd.OrderID), slog.Any("error", err))
		}
	}
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrForbidden):
		return "forbidden"
	case errors.Is(err, entities.ErrInvalidTransition):
		return "invalid_transition"
	case entities.IsRetryable(err):
		return "retries_exhausted"
	}
	return "error"
}
