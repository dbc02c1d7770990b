package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go-hrms/internal/domain"
	"go-hrms/internal/shared/contextutil"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, in NewPrincipal) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
	VerifyCredential(ctx context.Context, email, password string) (*User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}

type service struct {
	repo Repository
	rdb  *redis.Client
	// cached views that embed principal fields
	dependentKeys []string
	logger        *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithCache(repo, nil, nil, logger...)
}

// NewServiceWithCache drops dependentKeys from rdb whenever a profile changes.
func NewServiceWithCache(repo Repository, rdb *redis.Client, dependentKeys []string, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, rdb: rdb, dependentKeys: dependentKeys, logger: l}
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BuildPrincipal validates in and returns a ready-to-insert User with a
// hashed password. It does not touch the store, so callers may insert it
// inside their own transaction.
func BuildPrincipal(in NewPrincipal) (*User, error) {
	email := NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, usererrors.ErrInvalidEmail
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.IsValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Password:     hashed,
		Role:         role,
		ProfileImage: strings.TrimSpace(in.ProfileImage),
		IsActive:     true,
	}, nil
}

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", usererrors.ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ApplyPatch merges patch into u: last non-empty wins. A non-empty password
// is re-hashed. The caller must check email uniqueness first.
func ApplyPatch(u *User, patch ProfilePatch) error {
	if name := strings.TrimSpace(patch.Name); name != "" {
		u.Name = name
	}
	if email := NormalizeEmail(patch.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return usererrors.ErrInvalidEmail
		}
		u.Email = email
	}
	if role := strings.TrimSpace(patch.Role); role != "" {
		if !domain.IsValidRole(role) {
			return usererrors.ErrInvalidRole
		}
		u.Role = role
	}
	if img := strings.TrimSpace(patch.ProfileImage); img != "" {
		u.ProfileImage = img
	}
	if patch.Password != "" {
		hashed, err := HashPassword(patch.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}

func (s *service) Create(ctx context.Context, in NewPrincipal) (*User, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := BuildPrincipal(in)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, u.Email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, usererrors.ErrEmailAlreadyExists
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.String("email", u.Email), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return u, nil
}

func (s *service) FindByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if email := NormalizeEmail(patch.Email); email != "" && email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, email, u.ID.String())
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, usererrors.ErrEmailAlreadyExists
		}
	}

	if err := ApplyPatch(u, patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.invalidateDependentCaches(ctx)
	return u, nil
}

func (s *service) invalidateDependentCaches(ctx context.Context) {
	if s.rdb == nil || len(s.dependentKeys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, s.dependentKeys...).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to invalidate cached views",
			zap.Strings("keys", s.dependentKeys),
			zap.Error(err),
		)
	}
}

func (s *service) VerifyCredential(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
			return nil, usererrors.ErrInvalidCredential
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, usererrors.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, usererrors.ErrInvalidCredential
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	u.Password = hashed
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update password", zap.Error(err))
		return mapRepositoryError(err)
	}

	l.Info("password changed", zap.String("user_id", u.ID.String()))
	return nil
}
