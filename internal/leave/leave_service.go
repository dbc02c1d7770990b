package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, principalID string, req CreateLeaveRequest) (LeaveResponse, error)
	ListForEmployee(ctx context.Context, principalID string, actor domain.Actor) ([]LeaveResponse, error)
	ListAll(ctx context.Context) ([]LeaveResponse, error)
	GetDetail(ctx context.Context, id string) (LeaveResponse, error)
	SetStatus(ctx context.Context, id, status string, actor domain.Actor) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Resolver
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Resolver,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, employees: employees, outbox: outboxRepo, logger: l}
}

func (s *service) Request(ctx context.Context, principalID string, req CreateLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create leave requested",
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType := strings.TrimSpace(req.LeaveType)
	if !IsValidType(leaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	empl, found, err := s.employees.Resolve(ctx, principalID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !found {
		return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, empl.ID.String(), start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	lv := &Leave{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  TotalDays(start, end),
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
	}
	if err := qtx.Create(ctx, lv); err != nil {
		l.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, lv.ID.String(), events.EventLeaveRequested, events.LeaveRequestedEvent{
		EventType:  events.EventLeaveRequested,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    lv.ID.String(),
		EmployeeID: empl.ID.String(),
		LeaveType:  leaveType,
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		l.Error("create leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("leave requested",
		zap.String("leave_id", lv.ID.String()),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*lv), nil
}

func (s *service) ListForEmployee(ctx context.Context, principalID string, actor domain.Actor) ([]LeaveResponse, error) {
	empl, found, err := s.employees.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	if !actor.CanAccessOwn(empl.UserID.String()) {
		return nil, apperror.ErrForbidden
	}

	leaves, err := s.repo.FindByEmployee(ctx, empl.ID.String())
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employee leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(leaves), nil
}

// GetDetail treats a broken employee or principal join as not found.
func (s *service) GetDetail(ctx context.Context, id string) (LeaveResponse, error) {
	lv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if lv.Employee == nil || lv.Employee.User == nil {
		contextutil.GetLogger(ctx, s.logger).Warn("leave join chain broken", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*lv), nil
}

// SetStatus applies an admin decision. Only the edges in the transition
// table are accepted; the row is locked for the duration of the check.
func (s *service) SetStatus(ctx context.Context, id, status string, actor domain.Actor) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !actor.IsAdmin() {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	status = strings.TrimSpace(status)
	if !IsValidStatus(status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lv, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := lv.Status
	if !CanTransition(from, status) {
		l.Warn("set leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", from),
			zap.String("to_status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	lv.Status = status
	lv.DecidedAt = &now
	if deciderID, err := uuid.Parse(actor.UserID); err == nil {
		lv.DecidedBy = &deciderID
	}

	if err := qtx.Update(ctx, lv); err != nil {
		l.Error("set leave status persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, lv.ID.String(), events.EventLeaveStatusChanged, events.LeaveStatusChangedEvent{
		EventType:  events.EventLeaveStatusChanged,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    lv.ID.String(),
		EmployeeID: lv.EmployeeID.String(),
		FromStatus: from,
		ToStatus:   status,
		DecidedBy:  actor.UserID,
		OccurredAt: now,
	}); err != nil {
		l.Error("set leave status outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("set leave status commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("leave status changed",
		zap.String("leave_id", id),
		zap.String("from_status", from),
		zap.String("to_status", status),
	)
	return mapToResponse(*lv), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	ev, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"leave",
		aggregateID,
		eventType,
		events.LeaveLifecycleTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(startRaw))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(endRaw))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

// TotalDays counts calendar days, both ends inclusive.
func TotalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		DecidedAt:  l.DecidedAt,
		AppliedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if l.DecidedBy != nil {
		resp.DecidedBy = l.DecidedBy.String()
	}
	if e := l.Employee; e != nil {
		emp := &LeaveEmployeeResponse{
			ID:             e.ID.String(),
			EmployeeNumber: e.EmployeeNumber,
		}
		if e.User != nil {
			emp.Name = e.User.Name
			emp.ProfileImage = e.User.ProfileImage
		}
		if e.Department != nil {
			emp.Department = e.Department.Name
		}
		resp.Employee = emp
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}
