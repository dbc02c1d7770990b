package user

import (
	"context"
	"errors"

	usererrors "go-hrms/internal/user/errors"
)

// ActiveChecker lets the auth middleware refuse tokens of principals that
// were deactivated after the token was issued.
type ActiveChecker struct {
	users Service
}

func NewActiveChecker(users Service) *ActiveChecker {
	return &ActiveChecker{users: users}
}

func (a *ActiveChecker) IsActive(ctx context.Context, userID string) (bool, error) {
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsActive, nil
}
