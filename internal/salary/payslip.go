package salary

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// renderPayslip draws a single-page A4 payslip for s. s.Employee must be loaded.
func renderPayslip(s *Salary) ([]byte, error) {
	name, email, dept := "-", "-", "-"
	number := "-"
	if e := s.Employee; e != nil {
		number = e.EmployeeNumber
		if e.User != nil {
			name, email = e.User.Name, e.User.Email
		}
		if e.Department != nil {
			dept = e.Department.Name
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+s.PayDate.Format(dateLayout), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", name, number))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", dept))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", s.PayDate.Format(dateLayout)))
	pdf.Ln(10)

	rows := []struct {
		label  string
		amount int64
	}{
		{"Basic salary", s.BasicSalary},
		{"Allowances", s.Allowances},
		{"Deductions", -s.Deductions},
	}
	for _, row := range rows {
		pdf.CellFormat(80, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%d", row.amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%d", s.NetSalary), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
