package salary

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

// Salary is one disbursement. Rows are append-only: NetSalary is fixed at
// insert time and never recomputed.
type Salary struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;index;not null"`
	BasicSalary int64     `gorm:"not null"`
	Allowances  int64     `gorm:"not null;default:0"`
	Deductions  int64     `gorm:"not null;default:0"`
	NetSalary   int64     `gorm:"not null"`
	PayDate     time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

// ComputeNet returns basic + allowances - deductions.
func ComputeNet(basic, allowances, deductions int64) int64 {
	return basic + allowances - deductions
}
