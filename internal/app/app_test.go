package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"
	"go-hrms/internal/salary"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"
	userMock "go-hrms/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	registerRoutes(r, handlers{
		auth:       auth.NewHandler(nil, false, 0),
		user:       user.NewHandler(nil),
		department: department.NewHandler(nil),
		employee:   employee.NewHandler(nil),
		salary:     salary.NewHandler(nil),
		leave:      leave.NewHandler(nil),
		rbac:       rbac.NewHandler(nil),
	}, nil, middleware.AuthMiddleware("test-secret"), nil, zap.NewNop())
	return r
}

func TestRegisterRoutes_APISurface(t *testing.T) {
	r := newTestRouter(t)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/login",
		"GET /api/auth/verify",
		"PUT /api/setting/change-password",
		"POST /api/department/add",
		"GET /api/department",
		"GET /api/department/:id",
		"PUT /api/department/:id",
		"DELETE /api/department/:id",
		"POST /api/employee/add",
		"GET /api/employee/:id",
		"GET /api/employee",
		"GET /api/employee/department/:id",
		"PUT /api/employee/update/:id",
		"DELETE /api/employee/:id",
		"POST /api/salary/add",
		"GET /api/salary/:id",
		"GET /api/salary/payslip/:id",
		"POST /api/leave/add",
		"GET /api/leave/:userId",
		"GET /api/leave",
		"GET /api/leave/detail/:id",
		"PUT /api/leave/:id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRegisterRoutes_RequiresCredential(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/employee", "/api/leave", "/api/salary/abc", "/api/department"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{SeedAdminName: "Admin", SeedAdminEmail: "admin@example.com", SeedAdminPassword: "secret123"}

	t.Run("disabled without email", func(t *testing.T) {
		users := userMock.NewMockService(gomock.NewController(t))

		assert.NoError(t, seedAdmin(ctx, users, config.Config{}, zap.NewNop()))
	})

	t.Run("existing principal is kept", func(t *testing.T) {
		users := userMock.NewMockService(gomock.NewController(t))
		users.EXPECT().FindByEmail(ctx, cfg.SeedAdminEmail).Return(&user.User{ID: uuid.New()}, nil)

		assert.NoError(t, seedAdmin(ctx, users, cfg, zap.NewNop()))
	})

	t.Run("creates an admin", func(t *testing.T) {
		users := userMock.NewMockService(gomock.NewController(t))
		users.EXPECT().FindByEmail(ctx, cfg.SeedAdminEmail).Return(nil, usererrors.ErrUserNotFound)
		users.EXPECT().Create(ctx, user.NewPrincipal{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "secret123",
			Role:     domain.RoleAdmin,
		}).Return(&user.User{ID: uuid.New(), Role: domain.RoleAdmin}, nil)

		assert.NoError(t, seedAdmin(ctx, users, cfg, zap.NewNop()))
	})

	t.Run("create failure", func(t *testing.T) {
		users := userMock.NewMockService(gomock.NewController(t))
		users.EXPECT().FindByEmail(ctx, cfg.SeedAdminEmail).Return(nil, usererrors.ErrUserNotFound)
		users.EXPECT().Create(ctx, gomock.Any()).Return(nil, usererrors.ErrPasswordTooShort)

		err := seedAdmin(ctx, users, cfg, zap.NewNop())

		require.Error(t, err)
		assert.True(t, errors.Is(err, usererrors.ErrPasswordTooShort))
	})
}
