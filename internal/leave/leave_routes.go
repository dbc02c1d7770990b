package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	authMiddleware gin.HandlerFunc,
	logger *zap.Logger,
) {
	leaves := r.Group("/leave")
	leaves.Use(authMiddleware)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionList),
			handler.GetAll,
		)
		leaves.GET("/detail/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionList),
			handler.GetDetail,
		)
		leaves.GET("/:userId",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
			handler.GetForEmployee,
		)
		leaves.POST("/add",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate),
			handler.Create,
		)
		leaves.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApprove),
			handler.UpdateStatus,
		)
	}
}
