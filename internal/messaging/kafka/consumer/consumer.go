package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const AuditActionLeaveDecided = "LEAVE_DECIDED"

// Fetch failures are retried with exponential backoff between these bounds.
var (
	minFetchBackoff = 200 * time.Millisecond
	maxFetchBackoff = 5 * time.Second
)

// ConsumeLeaveDecisions writes an audit entry for every leave status change
// until ctx is cancelled. Undecodable messages are committed and skipped.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	backoff := minFetchBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err), zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				log.Info("leave lifecycle consumer stopped")
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxFetchBackoff)
			continue
		}
		backoff = minFetchBackoff

		if handleLeaveMessage(ctx, msg, audit, log) {
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit leave lifecycle message failed", zap.Error(err))
			}
		}
	}
}

func handleLeaveMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger, log *zap.Logger) bool {
	if eventType := header(msg, "event_type"); eventType != "" && eventType != events.EventLeaveStatusChanged {
		return true
	}

	var event events.LeaveStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave_status_changed event failed", zap.Error(err))
		return true
	}
	if event.LeaveID == "" {
		log.Warn("leave_status_changed event without leave id, skipping")
		return true
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  AuditActionLeaveDecided,
		Message: "leave " + event.LeaveID + " " + event.FromStatus + " -> " + event.ToStatus,
		ActorID: event.DecidedBy,
		Meta: map[string]any{
			"leave_id":    event.LeaveID,
			"employee_id": event.EmployeeID,
			"from":        event.FromStatus,
			"to":          event.ToStatus,
			"request_id":  event.RequestID,
		},
	})

	log.Info("leave decision audited",
		zap.String("leave_id", event.LeaveID),
		zap.String("status", event.ToStatus),
	)
	return true
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
