package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("OUTBOX_BATCH_SIZE", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 50, cfg.OutboxBatchSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", " 9090 ")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("OUTBOX_BATCH_SIZE", "10")
	t.Setenv("DB_NAME", "hr")
	t.Setenv("SEED_ADMIN_EMAIL", " admin@example.com ")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.OutboxBatchSize)
	assert.Equal(t, "hr", cfg.DB.Name)
	assert.Equal(t, "admin@example.com", cfg.SeedAdminEmail)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("OUTBOX_BATCH_SIZE", "-3")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 50, cfg.OutboxBatchSize)
}
