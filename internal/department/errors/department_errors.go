package departmenterrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentInUse = apperror.New(
		apperror.CodeConflict,
		"Department is still assigned to employees",
		http.StatusConflict,
	)

	ErrDepartmentNameRequired = apperror.RequiredField("Department name")
)
