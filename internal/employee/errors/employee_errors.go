package employeeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusConflict,
	)
	ErrPrincipalAlreadyEmployed = apperror.New(
		apperror.CodeConflict,
		"User already has an employee record",
		http.StatusConflict,
	)
	ErrEmployeeNumberImmutable = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID cannot be changed",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dob format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNumberRequired = apperror.RequiredField("Employee ID")
	ErrDepartmentRequired     = apperror.RequiredField("Department")
)
