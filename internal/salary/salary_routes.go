package salary

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	authMiddleware gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	salaries := r.Group("/salary")
	salaries.Use(authMiddleware)
	salaries.Use(middleware.ContextLogger(logger))
	{
		add := []gin.HandlerFunc{
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionCreate),
		}
		if rdb != nil {
			add = append(add, middleware.Idempotency(rdb))
		}
		salaries.POST("/add", append(add, handler.Add)...)

		salaries.GET("/payslip/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.Payslip,
		)

		salaries.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.GetByEmployee,
		)
	}
}
