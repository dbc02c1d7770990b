package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EventEmployeeCreated = "employee_created"
	EventEmployeeDeleted = "employee_deleted"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	UserID         string    `json:"user_id"`
	EmployeeNumber string    `json:"employee_number"`
	DepartmentID   string    `json:"department_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	UserID     string    `json:"user_id"`
	DeletedBy  string    `json:"deleted_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
