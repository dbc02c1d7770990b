package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	listCacheKey = "departments:all"
	listCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	redis         *redis.Client
	dependentKeys []string
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithCache(db, repo, rdb, nil, logger...)
}

// NewServiceWithCache also drops dependentKeys, cached views that embed
// department names, on every write.
func NewServiceWithCache(db *sql.DB, repo Repository, rdb *redis.Client, dependentKeys []string, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, redis: rdb, dependentKeys: dependentKeys, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameRequired
	}

	dept := &Department{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, listCacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		l.Error("failed to list departments", zap.Error(err))
		return nil, err
	}

	resp := mapToListResponse(depts)
	if s.redis != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.redis.Set(ctx, listCacheKey, payload, listCacheTTL).Err(); err != nil {
				l.Warn("failed to cache department list", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = name
	dept.Description = strings.TrimSpace(req.Description)

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx)
	return mapToResponse(*dept), nil
}

// Delete soft-deletes the department. It is refused while any employee
// still references it.
func (s *service) Delete(ctx context.Context, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	inUse, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		l.Info("department delete refused", zap.String("department_id", id), zap.Int64("employees", inUse))
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys := append([]string{listCacheKey}, s.dependentKeys...)
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to invalidate department cache", zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
