package producer

import (
	"context"
	"sync"

	"go-hrms/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const DefaultBatchSize = 50

// MessageWriter is satisfied by *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Relay moves pending outbox rows to Kafka. Rows are marked sent only after
// the broker acknowledged the write; failures are rescheduled by the repository.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	batchSize int
	logger    *zap.Logger

	mu sync.Mutex
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, batchSize int, logger ...*zap.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	return &Relay{repo: repo, writer: writer, batchSize: batchSize, logger: l}
}

// RunOnce publishes one batch and reports how many events were sent.
// Overlapping calls are serialized.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := r.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}
	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}
