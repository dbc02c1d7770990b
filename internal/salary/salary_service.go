package salary

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	salaryerrors "go-hrms/internal/salary/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, req AddSalaryRequest) (SalaryResponse, error)
	GetByEmployee(ctx context.Context, identifier string, actor domain.Actor) ([]SalaryResponse, error)
	Payslip(ctx context.Context, salaryID string, actor domain.Actor) (Payslip, error)
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
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, employees: employees, outbox: outboxRepo, logger: l}
}

func (s *service) Add(ctx context.Context, req AddSalaryRequest) (SalaryResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if req.BasicSalary < 0 || req.Allowances < 0 || req.Deductions < 0 {
		return SalaryResponse{}, salaryerrors.ErrNegativeAmount
	}
	payDate, err := time.Parse(dateLayout, strings.TrimSpace(req.PayDate))
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidPayDate
	}

	empl, found, err := s.employees.Resolve(ctx, strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return SalaryResponse{}, err
	}
	if !found {
		return SalaryResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	rec := &Salary{
		ID:          uuid.New(),
		EmployeeID:  empl.ID,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		NetSalary:   ComputeNet(req.BasicSalary, req.Allowances, req.Deductions),
		PayDate:     payDate,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("add salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		l.Error("add salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		ev, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"salary",
			rec.ID.String(),
			events.EventSalaryDisbursed,
			events.SalaryLedgerTopic,
			events.SalaryDisbursedEvent{
				EventType:  events.EventSalaryDisbursed,
				RequestID:  contextutil.GetRequestID(ctx),
				SalaryID:   rec.ID.String(),
				EmployeeID: empl.ID.String(),
				NetSalary:  rec.NetSalary,
				PayDate:    payDate.Format(dateLayout),
				OccurredAt: time.Now().UTC(),
			},
		)
		if err != nil {
			return SalaryResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
			l.Error("add salary outbox persist failed", zap.String("salary_id", rec.ID.String()), zap.Error(err))
			return SalaryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error("add salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	l.Info("salary added",
		zap.String("salary_id", rec.ID.String()),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*rec, empl.EmployeeNumber), nil
}

// GetByEmployee accepts an employee id or a principal id. An employee with no
// records yields an empty list.
func (s *service) GetByEmployee(ctx context.Context, identifier string, actor domain.Actor) ([]SalaryResponse, error) {
	empl, found, err := s.employees.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !found {
		if !actor.CanAccessOwn(identifier) {
			return nil, apperror.ErrForbidden
		}
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	if !actor.CanAccessOwn(empl.UserID.String()) {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.repo.FindByEmployee(ctx, empl.ID.String())
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list salaries failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	resp := make([]SalaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row, empl.EmployeeNumber)
	}
	return resp, nil
}

func (s *service) Payslip(ctx context.Context, salaryID string, actor domain.Actor) (Payslip, error) {
	rec, err := s.repo.FindByID(ctx, salaryID)
	if err != nil {
		return Payslip{}, mapRepositoryError(err)
	}
	if rec.Employee == nil {
		return Payslip{}, salaryerrors.ErrSalaryNotFound
	}
	if !actor.CanAccessOwn(rec.Employee.UserID.String()) {
		return Payslip{}, apperror.ErrForbidden
	}

	content, err := renderPayslip(rec)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render payslip failed",
			zap.String("salary_id", salaryID),
			zap.Error(err),
		)
		return Payslip{}, apperror.WithCause(salaryerrors.ErrPayslipRender, err)
	}

	return Payslip{
		FileName: "payslip-" + rec.Employee.EmployeeNumber + "-" + rec.PayDate.Format(dateLayout) + ".pdf",
		Content:  content,
	}, nil
}

func mapToResponse(s Salary, employeeNumber string) SalaryResponse {
	return SalaryResponse{
		ID: s.ID.String(),
		Employee: SalaryEmployeeResponse{
			ID:             s.EmployeeID.String(),
			EmployeeNumber: employeeNumber,
		},
		BasicSalary: s.BasicSalary,
		Allowances:  s.Allowances,
		Deductions:  s.Deductions,
		NetSalary:   s.NetSalary,
		PayDate:     s.PayDate.Format(dateLayout),
		CreatedAt:   s.CreatedAt,
	}
}
