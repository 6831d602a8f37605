package payroll

import "context"

// PayrollRepository - interface for payrolls table
type PayrollRepository interface {
	// Create inserts a record, surfacing ErrPayrollExists when one
	// already exists for (employee, month, year).
	Create(ctx context.Context, record Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) (Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Update(ctx context.Context, record Payroll) error
	Delete(ctx context.Context, id string) error

	// YearlySummary aggregates gross, net and deductions for a year.
	YearlySummary(ctx context.Context, employeeID string, year int) (YearlySummary, error)
}
