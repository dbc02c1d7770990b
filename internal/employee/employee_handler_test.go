package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandlerRouter(t *testing.T, actor domain.Actor) (*gin.Engine, *employeeMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("role", actor.Role)
		c.Next()
	})
	r.GET("/employee", h.GetAll)
	r.GET("/employee/department/:id", h.GetByDepartment)
	r.GET("/employee/:id", h.GetById)
	r.POST("/employee/add", h.Create)
	r.PUT("/employee/update/:id", h.Update)
	r.DELETE("/employee/:id", h.Delete)
	return r, svc
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var adminActor = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

func TestEmployeeHandler_Create(t *testing.T) {
	body := gin.H{
		"name":       "Ada",
		"email":      "a@x.com",
		"password":   "secret1",
		"employeeId": "EMP001",
		"department": "7f7b3d8e-4a5c-4c1e-9a51-2f0a9f3c1d10",
		"salary":     5000,
	}

	t.Run("created", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{ID: "e-1", EmployeeNumber: "EMP001"}, nil)

		w := doRequest(r, http.MethodPost, "/employee/add", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employeeId":"EMP001"`)
	})

	t.Run("missing employee id is a validation error", func(t *testing.T) {
		r, _ := newHandlerRouter(t, adminActor)
		bad := gin.H{"name": "Ada", "email": "a@x.com", "password": "secret1", "department": body["department"]}

		w := doRequest(r, http.MethodPost, "/employee/add", bad)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNumberAlreadyExists)

		w := doRequest(r, http.MethodPost, "/employee/add", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("passes the caller as actor", func(t *testing.T) {
		self := domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}
		r, svc := newHandlerRouter(t, self)
		svc.EXPECT().GetByID(gomock.Any(), "u-1", self).Return(employee.EmployeeResponse{ID: "e-1"}, nil)

		w := doRequest(r, http.MethodGet, "/employee/u-1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee"`)
	})

	t.Run("forbidden", func(t *testing.T) {
		r, svc := newHandlerRouter(t, domain.Actor{UserID: "u-2", Role: domain.RoleEmployee})
		svc.EXPECT().GetByID(gomock.Any(), "e-1", gomock.Any()).Return(employee.EmployeeResponse{}, apperror.ErrForbidden)

		w := doRequest(r, http.MethodGet, "/employee/e-1", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().GetByID(gomock.Any(), "e-9", adminActor).Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

		w := doRequest(r, http.MethodGet, "/employee/e-9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	list := []employee.EmployeeResponse{
		{ID: "e-1", EmployeeNumber: "EMP002", User: &user.UserResponse{Name: "Zed", Email: "z@x.com"}},
		{ID: "e-2", EmployeeNumber: "EMP001", User: &user.UserResponse{Name: "Ada", Email: "a@x.com"}},
	}

	t.Run("filters and sorts", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().GetAll(gomock.Any()).Return(list, nil)

		w := doRequest(r, http.MethodGet, "/employee?sort_by=name", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Employees []employee.EmployeeResponse `json:"employees"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Employees, 2)
		assert.Equal(t, "e-2", body.Employees[0].ID)
	})

	t.Run("query narrows the list", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().GetAll(gomock.Any()).Return(list, nil)

		w := doRequest(r, http.MethodGet, "/employee?q=zed", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"e-1"`)
		assert.NotContains(t, w.Body.String(), `"e-2"`)
	})
}

func TestEmployeeHandler_GetByDepartment(t *testing.T) {
	r, svc := newHandlerRouter(t, adminActor)
	svc.EXPECT().GetByDepartment(gomock.Any(), "d-1").Return([]employee.EmployeeResponse{{ID: "e-1"}}, nil)

	w := doRequest(r, http.MethodGet, "/employee/department/d-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employees"`)
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := newHandlerRouter(t, adminActor)
		svc.EXPECT().Update(gomock.Any(), "e-1", employee.UpdateEmployeeRequest{Designation: "Lead"}).
			Return(employee.EmployeeResponse{ID: "e-1", Designation: "Lead"}, nil)

		w := doRequest(r, http.MethodPut, "/employee/update/e-1", gin.H{"designation": "Lead"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"designation":"Lead"`)
	})

	t.Run("negative salary rejected at the boundary", func(t *testing.T) {
		r, _ := newHandlerRouter(t, adminActor)

		w := doRequest(r, http.MethodPut, "/employee/update/e-1", gin.H{"salary": -1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	r, svc := newHandlerRouter(t, adminActor)
	svc.EXPECT().Delete(gomock.Any(), "e-1", adminActor).Return(nil)

	w := doRequest(r, http.MethodDelete, "/employee/e-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}
