package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, httpErr.Status)
		assert.Equal(t, apperror.CodeForbidden, httpErr.Code)
		assert.Equal(t, apperror.ErrForbidden.Message, httpErr.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	})

	t.Run("unknown error becomes internal error", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("connection reset by peer"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection reset")
	})
}

func TestWithCause(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := apperror.WithCause(apperror.ErrInvalidInput, cause)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeConflict, "x", http.StatusConflict))
}

type sample struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	t.Run("required field", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(sample{}))

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Equal(t, "Employee Id is required", appErr.Message)
	})

	t.Run("invalid field", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(sample{EmployeeID: "EMP001", Email: "nope"}))

		assert.Equal(t, "Email is invalid", err.Error())
	})

	t.Run("non validation error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("EOF"))

		assert.Equal(t, "Invalid input", err.Error())
	})
}
