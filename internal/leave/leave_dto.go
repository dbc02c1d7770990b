package leave

import "time"

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveEmployeeResponse struct {
	ID             string `json:"_id"`
	EmployeeNumber string `json:"employeeId"`
	Name           string `json:"name,omitempty"`
	ProfileImage   string `json:"profileImage,omitempty"`
	Department     string `json:"dep_name,omitempty"`
}

type LeaveResponse struct {
	ID         string                 `json:"_id"`
	EmployeeID string                 `json:"employeeId"`
	Employee   *LeaveEmployeeResponse `json:"employee,omitempty"`
	LeaveType  string                 `json:"leaveType"`
	StartDate  string                 `json:"startDate"`
	EndDate    string                 `json:"endDate"`
	TotalDays  int                    `json:"totalDays"`
	Reason     string                 `json:"reason,omitempty"`
	Status     string                 `json:"status"`
	DecidedBy  string                 `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time             `json:"decidedAt,omitempty"`
	AppliedAt  time.Time              `json:"appliedAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}
