package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByDepartment(ctx context.Context, departmentID string) ([]Employee, error)
	ExistsByEmployeeNumber(ctx context.Context, number string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	SoftDelete(ctx context.Context, id string) error
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

// joined preloads the principal without its password hash, plus the department.
func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Omit("password")
		}).
		Preload("Department", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var empl Employee
	if err := r.joined(ctx).First(&empl, "employees.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var empl Employee
	if err := r.joined(ctx).First(&empl, "employees.user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.joined(ctx).
		Order("employees.created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByDepartment(ctx context.Context, departmentID string) ([]Employee, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return []Employee{}, nil
	}

	var empls []Employee
	err := r.joined(ctx).
		Where("employees.department_id = ?", departmentID).
		Order("employees.created_at ASC").
		Find(&empls).Error
	return empls, err
}

// ExistsByEmployeeNumber also sees soft-deleted rows, as the unique index does.
func (r *repository) ExistsByEmployeeNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Unscoped().
		Model(&Employee{}).
		Where("employee_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
