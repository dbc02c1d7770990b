package employee

import (
	"net/http"
	"sort"
	"strings"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "employee", resp, nil)
}

// GetAll supports ?q= (name, email or employee id), ?sort_by=name|employeeId
// and ?sort_dir=asc|desc before paginating.
func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.EmployeeNumber), q) ||
				(e.User != nil && (strings.Contains(strings.ToLower(e.User.Name), q) ||
					strings.Contains(strings.ToLower(e.User.Email), q))) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy != "" {
		desc := strings.ToLower(c.Query("sort_dir")) == "desc"
		sort.SliceStable(resp, func(i, j int) bool {
			var a, b string
			switch sortBy {
			case "employeeId":
				a, b = resp[i].EmployeeNumber, resp[j].EmployeeNumber
			default:
				a, b = displayName(resp[i]), displayName(resp[j])
			}
			if desc {
				return a > b
			}
			return a < b
		})
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, "employees", page, meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "employee", resp, nil)
}

func (h *Handler) GetByDepartment(c *gin.Context) {
	resp, err := h.service.GetByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "employees", resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "employee", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", nil, nil)
}

func displayName(e EmployeeResponse) string {
	if e.User == nil {
		return ""
	}
	return strings.ToLower(e.User.Name)
}
