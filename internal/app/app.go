package app

import (
	"context"
	"fmt"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/salary"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// NewLogger builds the process logger and installs it as the zap global.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// BuildApp connects the stores, migrates the schema and registers every
// module on router. The returned database backs the audit log.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, connectRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	router.Use(middleware.RequestID())

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		return nil, err
	}
	return gormDB, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&department.Department{},
		&employee.Employee{},
		&salary.Salary{},
		&leave.Leave{},
		&kafka.OutboxRecord{},
		&bootstrap.AuditRecord{},
	)
}

func seedAdmin(ctx context.Context, users user.Service, cfg config.Config, logger *zap.Logger) error {
	if cfg.SeedAdminEmail == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, cfg.SeedAdminEmail); err == nil {
		logger.Debug("admin seed skipped, principal exists", zap.String("email", cfg.SeedAdminEmail))
		return nil
	}

	u, err := users.Create(ctx, user.NewPrincipal{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("admin principal seeded", zap.String("user_id", u.ID.String()))
	return nil
}
