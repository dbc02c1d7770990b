package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/messaging/kafka"
	kafkamock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failOn  map[string]error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.failOn[string(m.Key)]; err != nil {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()

	evA := kafka.OutboxEvent{ID: "o-1", AggregateID: "emp-1", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`), RequestID: "req-1"}
	evB := kafka.OutboxEvent{ID: "o-2", AggregateID: "emp-2", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)}

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		w := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{evA, evB}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.NewRelay(repo, w, 10, zap.NewNop()).RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, w.written, 2)
		assert.Equal(t, "hr.employee.lifecycle.v1", w.written[0].Topic)
		assert.Equal(t, []byte("emp-1"), w.written[0].Key)
		assert.Len(t, w.written[0].Headers, 3)
		assert.Len(t, w.written[1].Headers, 2)
	})

	t.Run("write failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		w := &fakeWriter{failOn: map[string]error{"emp-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, producer.DefaultBatchSize).Return([]kafka.OutboxEvent{evA, evB}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.NewRelay(repo, w, 0, zap.NewNop()).RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 5).Return(nil, nil)

		sent, err := producer.NewRelay(repo, &fakeWriter{}, 5, zap.NewNop()).RunOnce(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 5).Return(nil, errors.New("db down"))

		_, err := producer.NewRelay(repo, &fakeWriter{}, 5, zap.NewNop()).RunOnce(ctx)

		assert.Error(t, err)
	})
}
