package user

import (
	"errors"

	usererrors "go-hrms/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	if IsDuplicateEmail(err) {
		return usererrors.ErrEmailAlreadyExists
	}

	return err
}

// IsDuplicateEmail reports whether err is the unique violation on users.email,
// as raised when a concurrent writer wins the race past the existence check.
func IsDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_email"
}
