package employee

import (
	"time"

	"go-hrms/internal/user"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Role           string `json:"role" binding:"omitempty,oneof=admin employee"`
	ProfileImage   string `json:"profileImage" binding:"omitempty,max=512"`
	EmployeeNumber string `json:"employeeId" binding:"required,max=64"`
	DateOfBirth    string `json:"dob" binding:"omitempty"`
	Gender         string `json:"gender" binding:"omitempty,max=32"`
	MaritalStatus  string `json:"maritalStatus" binding:"omitempty,max=32"`
	Designation    string `json:"designation" binding:"omitempty,max=255"`
	DepartmentID   string `json:"department" binding:"required,uuid"`
	Salary         int64  `json:"salary" binding:"gte=0"`
}

// UpdateEmployeeRequest is a partial update: empty fields keep the stored value.
type UpdateEmployeeRequest struct {
	Name           string `json:"name" binding:"omitempty,max=255"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password" binding:"omitempty,min=6"`
	Role           string `json:"role" binding:"omitempty,oneof=admin employee"`
	ProfileImage   string `json:"profileImage" binding:"omitempty,max=512"`
	EmployeeNumber string `json:"employeeId" binding:"omitempty,max=64"`
	DateOfBirth    string `json:"dob" binding:"omitempty"`
	Gender         string `json:"gender" binding:"omitempty,max=32"`
	MaritalStatus  string `json:"maritalStatus" binding:"omitempty,max=32"`
	Designation    string `json:"designation" binding:"omitempty,max=255"`
	DepartmentID   string `json:"department" binding:"omitempty,uuid"`
	Salary         *int64 `json:"salary" binding:"omitempty,gte=0"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"_id"`
	Name string `json:"dep_name"`
}

type EmployeeResponse struct {
	ID             string                      `json:"_id"`
	UserID         string                      `json:"userId"`
	User           *user.UserResponse          `json:"user,omitempty"`
	EmployeeNumber string                      `json:"employeeId"`
	DateOfBirth    string                      `json:"dob,omitempty"`
	Gender         string                      `json:"gender,omitempty"`
	MaritalStatus  string                      `json:"maritalStatus,omitempty"`
	Designation    string                      `json:"designation,omitempty"`
	DepartmentID   string                      `json:"departmentId"`
	Department     *EmployeeDepartmentResponse `json:"department,omitempty"`
	Salary         int64                       `json:"salary"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}
