package auth

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.GET("/verify", authMiddleware, middleware.RateLimitByUser(2, 5), handler.Verify)
		auth.POST("/logout", authMiddleware, handler.Logout)
	}
}
