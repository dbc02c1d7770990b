package department

import "time"

type CreateDepartmentRequest struct {
	Name        string `json:"dep_name" binding:"required,max=255"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"dep_name" binding:"required,max=255"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"dep_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
