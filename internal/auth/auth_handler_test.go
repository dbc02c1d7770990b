package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/auth"
	authMock "go-hrms/internal/auth/mock"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *authMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false, 3600)

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/verify", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, handler.Verify)
	return router, mockService
}

func postLogin(router *gin.Engine, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Login(t *testing.T) {
	t.Run("success sets cookie and returns token", func(t *testing.T) {
		router, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), "test@example.com", "password123").
			Return("access-token", user.UserResponse{ID: "user-1", Email: "test@example.com", Role: "admin"}, nil)

		w := postLogin(router, auth.LoginRequest{Email: "test@example.com", Password: "password123"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool              `json:"success"`
			Token   string            `json:"token"`
			User    user.UserResponse `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "access-token", resp.Token)
		assert.Equal(t, "admin", resp.User.Role)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("invalid credential", func(t *testing.T) {
		router, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), "test@example.com", "bad").
			Return("", user.UserResponse{}, usererrors.ErrInvalidCredential)

		w := postLogin(router, auth.LoginRequest{Email: "test@example.com", Password: "bad"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := setupAuthRouter(t)

		w := postLogin(router, gin.H{"email": "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Verify(t *testing.T) {
	router, svc := setupAuthRouter(t)
	svc.EXPECT().Verify(gomock.Any(), "user-1").Return(user.UserResponse{ID: "user-1", Name: "Ann"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ann"`)
}
