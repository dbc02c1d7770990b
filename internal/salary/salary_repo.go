package salary

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository has no update or delete: the ledger is append-only.
//
//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindByID(ctx context.Context, id string) (*Salary, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Omit(clause.Associations).Create(s).Error
}

// FindByID loads the record with its employee, principal and department,
// including soft-deleted employees whose history is retained.
func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var s Salary
	err := r.conn(ctx).
		Preload("Employee", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Employee.User", func(db *gorm.DB) *gorm.DB { return db.Omit("password") }).
		Preload("Employee.Department", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&s, "salaries.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	var rows []Salary
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}
