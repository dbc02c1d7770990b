package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Conn(ctx, r.db, r.tx)
}

// joined loads Employee with its department name and the principal's name
// and profile image. Soft-deleted employees keep their history visible.
func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Employee", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Employee.Department", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "name")
		}).
		Preload("Employee.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "profile_image")
		})
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.joined(ctx).
		Order("leaves.created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var l Leave
	if err := r.joined(ctx).First(&l, "leaves.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate row-locks the leave until the surrounding tx ends.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Save(l).Error
}

// HasOverlappingPeriod ignores rejected requests.
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}
