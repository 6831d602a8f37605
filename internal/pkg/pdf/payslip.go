package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// PayslipData holds everything rendered on a salary slip.
type PayslipData struct {
	EmployeeName string
	EmployeeCode string
	Department   string
	Designation  string
	Month        time.Month
	Year         int
	BaseSalary   decimal.Decimal
	Allowances   map[string]decimal.Decimal
	Deductions   map[string]decimal.Decimal
	GrossSalary  decimal.Decimal
	NetSalary    decimal.Decimal
	WorkingDays  int
	TotalDays    int
	UnpaidDays   decimal.Decimal
}

// RenderPayslip renders a single-page A4 salary slip and returns the PDF bytes.
func RenderPayslip(data PayslipData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s / %s", data.Department, data.Designation))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", data.Month.String(), data.Year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days: %d working of %d total, %s unpaid leave",
		data.WorkingDays, data.TotalDays, data.UnpaidDays.StringFixed(1)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Base Salary: %s", data.BaseSalary.StringFixed(2)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Allowances")
	pdf.Ln(6)
	for name, amount := range data.Allowances {
		pdf.Cell(0, 6, fmt.Sprintf("  %s: %s", name, amount.StringFixed(2)))
		pdf.Ln(5)
	}
	pdf.Ln(3)

	pdf.Cell(0, 7, "Deductions")
	pdf.Ln(6)
	for name, amount := range data.Deductions {
		pdf.Cell(0, 6, fmt.Sprintf("  %s: %s", name, amount.StringFixed(2)))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", data.GrossSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net Pay: %s", data.NetSalary.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
