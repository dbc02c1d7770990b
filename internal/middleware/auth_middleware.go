package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActivePrincipalChecker reports whether the principal behind a valid token
// may still act. Unknown principals are (false, nil).
type ActivePrincipalChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware verifies the bearer token (or the access_token cookie) and
// puts user_id and role on the gin context. With a checker, tokens of
// deactivated principals are refused before their expiry.
func AuthMiddleware(secret string, checker ...ActivePrincipalChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			abortWith(c, err)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		if len(checker) > 0 && checker[0] != nil {
			active, err := checker[0].IsActive(c.Request.Context(), userID)
			if err != nil {
				abortWith(c, apperror.ErrInternal)
				return
			}
			if !active {
				abortWith(c, autherrors.ErrInvalidToken)
				return
			}
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)

		c.Next()
	}
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
