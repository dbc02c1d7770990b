package auth

import (
	"context"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (token string, resp user.UserResponse, err error)
	Verify(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	users  user.Service
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Service, secret string, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, user.UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.VerifyCredential(ctx, email, password)
	if err != nil {
		l.Info("login rejected", zap.String("email", user.NormalizeEmail(email)))
		return "", user.UserResponse{}, err
	}

	token, err := s.generateToken(u.ID.String(), u.Role)
	if err != nil {
		l.Error("failed to sign token", zap.Error(err))
		return "", user.UserResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return token, user.ToResponse(u), nil
}

func (s *service) Verify(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !u.IsActive {
		return user.UserResponse{}, autherrors.ErrInvalidToken
	}
	return user.ToResponse(u), nil
}

func (s *service) generateToken(userID, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
