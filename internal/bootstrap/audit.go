package bootstrap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuditLog struct {
	Action  string
	Message string
	ActorID string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// AuditRecord is a persisted audit entry.
type AuditRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Action    string         `gorm:"type:varchar(64);not null;index"`
	Message   string         `gorm:"type:varchar(255);not null"`
	ActorID   string         `gorm:"type:varchar(64)"`
	Meta      map[string]any `gorm:"serializer:json;type:text"`
	CreatedAt time.Time
}

func (AuditRecord) TableName() string {
	return "audit_logs"
}

type DBAuditLogger struct {
	db       *gorm.DB
	fallback AuditLogger
}

// NewDBAuditLogger writes entries to audit_logs and falls back to stdout
// when the insert fails.
func NewDBAuditLogger(db *gorm.DB) *DBAuditLogger {
	return &DBAuditLogger{db: db, fallback: NewStdoutAuditLogger()}
}

func (l *DBAuditLogger) Log(ctx context.Context, entry AuditLog) {
	rec := AuditRecord{
		ID:      uuid.New(),
		Action:  entry.Action,
		Message: entry.Message,
		ActorID: entry.ActorID,
		Meta:    entry.Meta,
	}
	if err := l.db.WithContext(ctx).Create(&rec).Error; err != nil {
		zap.L().Named("audit").Warn("persist audit entry failed", zap.Error(err))
		l.fallback.Log(ctx, entry)
	}
}
