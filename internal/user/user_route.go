package user

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
	setting := r.Group("/setting")
	setting.Use(authMiddleware)
	setting.Use(middleware.ContextLogger(logger))
	{
		setting.GET("/profile",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead),
			handler.GetProfile,
		)

		setting.PUT("/profile",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate),
			handler.UpdateProfile,
		)

		setting.PUT("/change-password",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate),
			handler.ChangePassword,
		)
	}
}
