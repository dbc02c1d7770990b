package salary

import "time"

const dateLayout = "2006-01-02"

type AddSalaryRequest struct {
	EmployeeID  string `json:"employeeId" binding:"required"`
	BasicSalary int64  `json:"basicSalary" binding:"gte=0"`
	Allowances  int64  `json:"allowances" binding:"gte=0"`
	Deductions  int64  `json:"deductions" binding:"gte=0"`
	PayDate     string `json:"payDate" binding:"required"`
}

type SalaryEmployeeResponse struct {
	ID             string `json:"_id"`
	EmployeeNumber string `json:"employeeId"`
}

type SalaryResponse struct {
	ID          string                 `json:"_id"`
	Employee    SalaryEmployeeResponse `json:"employeeId"`
	BasicSalary int64                  `json:"basicSalary"`
	Allowances  int64                  `json:"allowances"`
	Deductions  int64                  `json:"deductions"`
	NetSalary   int64                  `json:"netSalary"`
	PayDate     string                 `json:"payDate"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Payslip is a rendered PDF document.
type Payslip struct {
	FileName string
	Content  []byte
}
