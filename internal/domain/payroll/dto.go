package payroll

import (
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	EmployeeID string             `json:"employee_id"`
	Month      int                `json:"month"`
	Year       int                `json:"year"`
	BaseSalary float64            `json:"base_salary"`
	Allowances map[string]float64 `json:"allowances,omitempty"`
	Deductions map[string]float64 `json:"deductions,omitempty"`
	Remarks    string             `json:"remarks,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2020 and 2100",
		})
	}

	if r.BaseSalary <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be greater than zero",
		})
	}

	for field, v := range r.Allowances {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances." + field,
				Message: "allowance amounts must not be negative",
			})
		}
	}

	for field, v := range r.Deductions {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "deductions." + field,
				Message: "deduction amounts must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdatePayrollRequest adjusts components of a modifiable record; the
// service recomputes derived amounts after applying it. Status may move
// between the non-Paid states; Paid is only reachable through MarkPaid.
type UpdatePayrollRequest struct {
	ID         string             `json:"id"`
	BaseSalary *float64           `json:"base_salary,omitempty"`
	Allowances map[string]float64 `json:"allowances,omitempty"`
	Deductions map[string]float64 `json:"deductions,omitempty"`
	Status     *string            `json:"status,omitempty"`
	Remarks    *string            `json:"remarks,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.BaseSalary != nil && *r.BaseSalary <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be greater than zero",
		})
	}

	if r.Status != nil {
		if st := Status(*r.Status); !st.IsValid() || st == StatusPaid {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of Pending, Processing, Failed, On Hold",
			})
		}
	}

	for field, v := range r.Allowances {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances." + field,
				Message: "allowance amounts must not be negative",
			})
		}
	}

	for field, v := range r.Deductions {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "deductions." + field,
				Message: "deduction amounts must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MarkPaidRequest settles a record. Payment metadata is optional; the
// transaction id is kept on the record once set.
type MarkPaidRequest struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	BankAccount   string `json:"bank_account,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PayrollFilter narrows list queries.
type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
	Page       int
	Limit      int
}

// YearlySummary aggregates one employee's payroll for a year.
type YearlySummary struct {
	EmployeeID      string  `json:"employee_id"`
	Year            int     `json:"year"`
	MonthsPaid      int     `json:"months_paid"`
	TotalGross      string  `json:"total_gross"`
	TotalNet        string  `json:"total_net"`
	TotalDeductions string  `json:"total_deductions"`
	UnpaidLeaveDays float64 `json:"unpaid_leave_days"`
}
