package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/department"
	"go-hrms/internal/domain"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ListCacheKey = "employees:list"
	listCacheTTL = 10 * time.Minute
)

// Resolver looks an employee up by its own id first and by its principal's
// id second. found is false, with a nil error, when neither matches.
type Resolver interface {
	Resolve(ctx context.Context, id string) (empl *Employee, found bool, err error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Resolver
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string, actor domain.Actor) (EmployeeResponse, error)
	GetByDepartment(ctx context.Context, departmentID string) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string, actor domain.Actor) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	users       user.Repository
	departments department.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	departments department.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		departments: departments,
		outbox:      outboxRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Resolve(ctx context.Context, id string) (*Employee, bool, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return empl, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	empl, err = s.repo.FindByUserID(ctx, id)
	if err == nil {
		return empl, true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	return nil, false, err
}

// Create inserts the principal and the employee in one transaction together
// with the employee_created outbox row.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create employee requested",
		zap.String("employee_number", req.EmployeeNumber),
		zap.String("department_id", req.DepartmentID),
	)

	number := strings.TrimSpace(req.EmployeeNumber)
	if number == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNumberRequired
	}
	if strings.TrimSpace(req.DepartmentID) == "" {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentRequired
	}
	if req.Salary < 0 {
		return EmployeeResponse{}, apperror.InvalidField("Salary")
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}

	principal, err := user.BuildPrincipal(user.NewPrincipal{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	utx := s.users.WithTx(tx)

	taken, err := qtx.ExistsByEmployeeNumber(ctx, number)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNumberAlreadyExists
	}

	taken, err = utx.ExistsByEmail(ctx, principal.Email, "")
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, usererrors.ErrEmailAlreadyExists
	}

	dept, err := s.departments.WithTx(tx).FindByID(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, mapDepartmentError(err)
	}

	if err := utx.Create(ctx, principal); err != nil {
		l.Error("create employee principal persist failed", zap.Error(err))
		return EmployeeResponse{}, mapUserError(err)
	}

	empl := &Employee{
		ID:             uuid.New(),
		UserID:         principal.ID,
		EmployeeNumber: number,
		DateOfBirth:    dob,
		Gender:         strings.TrimSpace(req.Gender),
		MaritalStatus:  strings.TrimSpace(req.MaritalStatus),
		Designation:    strings.TrimSpace(req.Designation),
		DepartmentID:   dept.ID,
		Salary:         req.Salary,
	}
	if err := qtx.Create(ctx, empl); err != nil {
		l.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, empl.ID.String(), events.EventEmployeeCreated, events.EmployeeCreatedEvent{
		EventType:      events.EventEmployeeCreated,
		RequestID:      rid,
		EmployeeID:     empl.ID.String(),
		UserID:         principal.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		DepartmentID:   dept.ID.String(),
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		l.Error("create employee outbox persist failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)

	l.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("user_id", principal.ID.String()),
	)

	empl.User = principal
	empl.Department = dept
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Concurrent misses share one query.
	v, err, _ := s.sf.Do(ListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ListCacheKey, payload, listCacheTTL).Err(); err != nil {
					l.Warn("failed to cache employee list", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		l.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	// every caller gets its own slice; handlers sort and filter in place
	shared := v.([]EmployeeResponse)
	resp := make([]EmployeeResponse, len(shared))
	copy(resp, shared)
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string, actor domain.Actor) (EmployeeResponse, error) {
	empl, found, err := s.Resolve(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !found {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	if !actor.CanAccessOwn(empl.UserID.String()) {
		contextutil.GetLogger(ctx, s.logger).Warn("employee read outside own record",
			zap.String("employee_id", empl.ID.String()),
		)
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetByDepartment(ctx context.Context, departmentID string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByDepartment(ctx, departmentID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get employees by department failed",
			zap.String("department_id", departmentID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

// Update merges req over the stored employee and principal: the last non-empty
// value wins. Both rows are saved in one transaction.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("update employee requested", zap.String("employee_id", id))

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.Salary != nil && *req.Salary < 0 {
		return EmployeeResponse{}, apperror.InvalidField("Salary")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	utx := s.users.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if number := strings.TrimSpace(req.EmployeeNumber); number != "" && number != empl.EmployeeNumber {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNumberImmutable
	}

	principal, err := utx.FindByID(ctx, empl.UserID.String())
	if err != nil {
		return EmployeeResponse{}, mapUserError(err)
	}

	if email := user.NormalizeEmail(req.Email); email != "" && email != principal.Email {
		taken, err := utx.ExistsByEmail(ctx, email, principal.ID.String())
		if err != nil {
			return EmployeeResponse{}, err
		}
		if taken {
			return EmployeeResponse{}, usererrors.ErrEmailAlreadyExists
		}
	}

	if err := user.ApplyPatch(principal, user.ProfilePatch{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		Password:     req.Password,
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if depID := strings.TrimSpace(req.DepartmentID); depID != "" && depID != empl.DepartmentID.String() {
		dept, err := s.departments.WithTx(tx).FindByID(ctx, depID)
		if err != nil {
			return EmployeeResponse{}, mapDepartmentError(err)
		}
		empl.DepartmentID = dept.ID
		empl.Department = dept
	}
	if dob != nil {
		empl.DateOfBirth = dob
	}
	if v := strings.TrimSpace(req.Gender); v != "" {
		empl.Gender = v
	}
	if v := strings.TrimSpace(req.MaritalStatus); v != "" {
		empl.MaritalStatus = v
	}
	if v := strings.TrimSpace(req.Designation); v != "" {
		empl.Designation = v
	}
	if req.Salary != nil {
		empl.Salary = *req.Salary
	}

	if err := utx.Update(ctx, principal); err != nil {
		l.Error("update employee principal persist failed", zap.Error(err))
		return EmployeeResponse{}, mapUserError(err)
	}
	if err := qtx.Update(ctx, empl); err != nil {
		l.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		l.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	l.Info("update employee success", zap.String("employee_id", id))

	empl.User = principal
	return mapToResponse(*empl), nil
}

// Delete soft-deletes the employee and deactivates its principal. Salary and
// leave history is kept.
func (s *service) Delete(ctx context.Context, id string, actor domain.Actor) error {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.SoftDelete(ctx, id); err != nil {
		l.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.users.WithTx(tx).SetActive(ctx, empl.UserID.String(), false); err != nil {
		l.Error("delete employee deactivate principal failed", zap.Error(err))
		return mapUserError(err)
	}

	if err := s.enqueue(ctx, tx, empl.ID.String(), events.EventEmployeeDeleted, events.EmployeeDeletedEvent{
		EventType:  events.EventEmployeeDeleted,
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: empl.ID.String(),
		UserID:     empl.UserID.String(),
		DeletedBy:  actor.UserID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)
	l.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	ev, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"employee",
		aggregateID,
		eventType,
		events.EmployeeLifecycleTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ListCacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", ListCacheKey),
		)
	}
}

func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfBirth
	}
	return &t, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		UserID:         empl.UserID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		Gender:         empl.Gender,
		MaritalStatus:  empl.MaritalStatus,
		Designation:    empl.Designation,
		DepartmentID:   empl.DepartmentID.String(),
		Salary:         empl.Salary,
		CreatedAt:      empl.CreatedAt,
		UpdatedAt:      empl.UpdatedAt,
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format(dateLayout)
	}
	if empl.User != nil {
		u := user.ToResponse(empl.User)
		resp.User = &u
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
