package events

import "time"

const SalaryLedgerTopic = "hr.salary.ledger.v1"

const EventSalaryDisbursed = "salary_disbursed"

type SalaryDisbursedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SalaryID   string    `json:"salary_id"`
	EmployeeID string    `json:"employee_id"`
	NetSalary  int64     `json:"net_salary"`
	PayDate    string    `json:"pay_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
