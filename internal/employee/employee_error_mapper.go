package employee

import (
	"errors"

	departmenterrors "go-hrms/internal/department/errors"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if user.IsDuplicateEmail(err) {
		return usererrors.ErrEmailAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employees_employee_number":
			return employeeerrors.ErrEmployeeNumberAlreadyExists
		case "uq_employees_user_id":
			return employeeerrors.ErrPrincipalAlreadyEmployed
		}
	}

	return err
}

func mapDepartmentError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	return err
}

func mapUserError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if user.IsDuplicateEmail(err) {
		return usererrors.ErrEmailAlreadyExists
	}
	return err
}
