package auth_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"
	mock_user "go-hrms/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "unit-test-secret"

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock_user.NewMockService(ctrl)
	svc := auth.NewService(users, secret, time.Hour)
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}

	t.Run("issues a token carrying user id and role", func(t *testing.T) {
		users.EXPECT().VerifyCredential(ctx, u.Email, "password123").Return(u, nil)

		token, resp, err := svc.Login(ctx, u.Email, "password123")

		require.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)

		claims, err := middleware.ParseToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, domain.RoleAdmin, claims["role"])
	})

	t.Run("invalid credential", func(t *testing.T) {
		users.EXPECT().VerifyCredential(ctx, u.Email, "wrong").Return(nil, usererrors.ErrInvalidCredential)

		token, _, err := svc.Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err, usererrors.ErrInvalidCredential)
		assert.Empty(t, token)
	})
}

func TestService_LoginTokenExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock_user.NewMockService(ctrl)
	svc := auth.NewService(users, secret, -time.Minute)

	u := &user.User{ID: uuid.New(), Role: domain.RoleEmployee, IsActive: true}
	users.EXPECT().VerifyCredential(gomock.Any(), "e@x.com", "pw1234").Return(u, nil)

	token, _, err := svc.Login(context.Background(), "e@x.com", "pw1234")
	require.NoError(t, err)

	_, err = middleware.ParseToken(token, secret)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock_user.NewMockService(ctrl)
	svc := auth.NewService(users, secret, time.Hour)
	ctx := context.Background()
	id := uuid.New()

	t.Run("active", func(t *testing.T) {
		users.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id, IsActive: true}, nil)

		resp, err := svc.Verify(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("deactivated", func(t *testing.T) {
		users.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id, IsActive: false}, nil)

		_, err := svc.Verify(ctx, id.String())
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
