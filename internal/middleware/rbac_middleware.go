package middleware

import (
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is anything that can answer an enforce request.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize rejects the request with 403 unless the caller's role holds
// resource:action. It must run after AuthMiddleware.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     c.GetString("role"),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			zap.L().Named("rbac.middleware").Error("enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWith(c, autherrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// Actor builds the service-level caller from the auth context.
func Actor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("role"),
	}
}
