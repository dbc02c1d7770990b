package app

import (
	"context"
	"database/sql"

	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/salary"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewStaticRepository(), enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewServiceWithCache(userRepo, rdb, []string{employee.ListCacheKey}, logger)
	authService := auth.NewService(userService, cfg.JWTSecret, cfg.JWTTTL, logger)
	departmentService := department.NewServiceWithCache(db, departmentRepo, rdb, []string{employee.ListCacheKey}, logger)
	employeeService := employee.NewService(db, employeeRepo, userRepo, departmentRepo, outboxRepo, rdb, logger)
	salaryService := salary.NewService(db, salaryRepo, employeeService, outboxRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, employeeService, outboxRepo, logger)

	if err := seedAdmin(context.Background(), userService, cfg, logger); err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, user.NewActiveChecker(userService))

	registerRoutes(router, handlers{
		auth:       auth.NewHandler(authService, cfg.IsProduction(), int(cfg.JWTTTL.Seconds()), logger),
		user:       user.NewHandler(userService, logger),
		department: department.NewHandler(departmentService, logger),
		employee:   employee.NewHandler(employeeService, logger),
		salary:     salary.NewHandler(salaryService, logger),
		leave:      leave.NewHandler(leaveService, logger),
		rbac:       rbac.NewHandler(rbacService, logger),
	}, rbacService, authMiddleware, rdb, logger)

	return nil
}

type handlers struct {
	auth       *auth.Handler
	user       *user.Handler
	department *department.Handler
	employee   *employee.Handler
	salary     *salary.Handler
	leave      *leave.Handler
	rbac       *rbac.Handler
}

func registerRoutes(
	router *gin.Engine,
	h handlers,
	rbacService rbac.Service,
	authMiddleware gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, h.auth, authMiddleware)
		user.RegisterRoutes(api, h.user, rbacService, authMiddleware, logger)
		department.RegisterRoutes(api, h.department, rbacService, authMiddleware, logger)
		employee.RegisterRoutes(api, h.employee, rbacService, authMiddleware, logger)
		salary.RegisterRoutes(api, h.salary, rbacService, authMiddleware, rdb, logger)
		leave.RegisterRoutes(api, h.leave, rbacService, authMiddleware, logger)
		rbac.RegisterRoutes(api, h.rbac, authMiddleware, logger)
	}
}
