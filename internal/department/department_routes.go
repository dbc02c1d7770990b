package department

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	authMiddleware gin.HandlerFunc,
	logger *zap.Logger,
) {
	departments := r.Group("/department")
	departments.Use(authMiddleware)
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetAll)
		departments.POST("/add", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionCreate), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetById)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionUpdate), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionDelete), h.Delete)
	}
}
