package employee

import (
	"time"

	"go-hrms/internal/department"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee binds exactly one principal to its employment attributes.
// Department is a weak reference; the catalog refuses deletes while in use.
type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_employees_user_id;not null"`
	EmployeeNumber string     `gorm:"type:varchar(64);uniqueIndex:uq_employees_employee_number;not null"`
	DateOfBirth    *time.Time `gorm:"type:date"`
	Gender         string     `gorm:"type:varchar(32)"`
	MaritalStatus  string     `gorm:"type:varchar(32)"`
	Designation    string     `gorm:"type:varchar(255)"`
	DepartmentID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Salary         int64      `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	User       *user.User             `gorm:"foreignKey:UserID"`
	Department *department.Department `gorm:"foreignKey:DepartmentID"`
}
