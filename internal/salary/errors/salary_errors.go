package salaryerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Salary amounts must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPayDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPayslipRender = apperror.New(
		apperror.CodeInternalError,
		"Failed to render payslip",
		http.StatusInternalServerError,
	)
)
