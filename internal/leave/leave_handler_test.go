package leave_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	leaveMock "go-hrms/internal/leave/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newHandlerRouter(t *testing.T, actor domain.Actor) (*gin.Engine, *leaveMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := leaveMock.NewMockService(gomock.NewController(t))
	h := leave.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("role", actor.Role)
		c.Next()
	})
	r.GET("/leave", h.GetAll)
	r.GET("/leave/detail/:id", h.GetDetail)
	r.GET("/leave/:userId", h.GetForEmployee)
	r.POST("/leave/add", h.Create)
	r.PUT("/leave/:id", h.UpdateStatus)
	return r, svc
}

func sendJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLeaveHandler_Create(t *testing.T) {
	self := domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}

	t.Run("uses the caller's principal", func(t *testing.T) {
		r, svc := newHandlerRouter(t, self)
		want := leave.CreateLeaveRequest{LeaveType: "Sick", StartDate: "2024-01-01", EndDate: "2024-01-03"}
		svc.EXPECT().Request(gomock.Any(), "u-1", want).Return(leave.LeaveResponse{ID: "l-1", Status: leave.StatusPending}, nil)

		w := sendJSON(r, http.MethodPost, "/leave/add", gin.H{"leaveType": "Sick", "startDate": "2024-01-01", "endDate": "2024-01-03"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Pending"`)
	})

	t.Run("missing dates", func(t *testing.T) {
		r, _ := newHandlerRouter(t, self)

		w := sendJSON(r, http.MethodPost, "/leave/add", gin.H{"leaveType": "Sick"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	admin := domain.Actor{UserID: "a-1", Role: domain.RoleAdmin}
	r, svc := newHandlerRouter(t, admin)
	svc.EXPECT().ListAll(gomock.Any()).Return([]leave.LeaveResponse{
		{ID: "l-1", Status: leave.StatusPending},
		{ID: "l-2", Status: leave.StatusApproved},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave?status=approved", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"l-2"`)
	assert.NotContains(t, w.Body.String(), `"l-1"`)
}

func TestLeaveHandler_GetDetail(t *testing.T) {
	admin := domain.Actor{UserID: "a-1", Role: domain.RoleAdmin}
	r, svc := newHandlerRouter(t, admin)
	svc.EXPECT().GetDetail(gomock.Any(), "l-9").Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave/detail/l-9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaveHandler_GetForEmployee(t *testing.T) {
	self := domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}
	r, svc := newHandlerRouter(t, self)
	svc.EXPECT().ListForEmployee(gomock.Any(), "u-1", self).Return([]leave.LeaveResponse{{ID: "l-1"}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave/u-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"leaves":[`)
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	admin := domain.Actor{UserID: "a-1", Role: domain.RoleAdmin}

	t.Run("approve", func(t *testing.T) {
		r, svc := newHandlerRouter(t, admin)
		svc.EXPECT().SetStatus(gomock.Any(), "l-1", leave.StatusApproved, admin).Return(leave.LeaveResponse{ID: "l-1", Status: leave.StatusApproved}, nil)

		w := sendJSON(r, http.MethodPut, "/leave/l-1", gin.H{"status": "Approved"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("terminal state", func(t *testing.T) {
		r, svc := newHandlerRouter(t, admin)
		svc.EXPECT().SetStatus(gomock.Any(), "l-1", leave.StatusRejected, admin).Return(leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition)

		w := sendJSON(r, http.MethodPut, "/leave/l-1", gin.H{"status": "Rejected"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"INVALID_STATE"`)
	})
}
