package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	ev, err := NewOutboxEvent("req-1", "employee", "emp-1", "employee_created", "hr.employee.lifecycle.v1", map[string]string{"a": "b"})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"a":"b"}`, string(ev.Payload))
	assert.NoError(t, ValidateOutboxEvent(ev))

	_, err = NewOutboxEvent("", "employee", "emp-1", "x", "t", make(chan int))
	assert.Error(t, err)
}

func TestValidateOutboxEvent(t *testing.T) {
	base := OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}

	tests := []struct {
		name    string
		mutate  func(e *OutboxEvent)
		wantErr bool
	}{
		{"valid", func(e *OutboxEvent) {}, false},
		{"missing id", func(e *OutboxEvent) { e.ID = "" }, true},
		{"missing topic", func(e *OutboxEvent) { e.Topic = "" }, true},
		{"empty payload", func(e *OutboxEvent) { e.Payload = nil }, true},
		{"unknown status", func(e *OutboxEvent) { e.Status = "queued" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.mutate(&e)
			err := ValidateOutboxEvent(e)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutboxRepository_CreateWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev, _ := NewOutboxEvent("req-1", "leave", "lv-1", "leave_status_changed", "hr.leave.lifecycle.v1", map[string]string{})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), ev))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "req-1", "salary", "sal-1", "salary_disbursed", "hr.salary.ledger.v1", []byte(`{}`), OutboxStatusPending, 0, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "sal-1", events[0].AggregateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-2", OutboxStatusFailed, "boom").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(context.Background(), "o-1"))
	assert.NoError(t, repo.MarkFailed(context.Background(), "o-2", "boom"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
