package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusPaid       Status = "Paid"
	StatusFailed     Status = "Failed"
	StatusOnHold     Status = "On Hold"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPaid, StatusFailed, StatusOnHold:
		return true
	}
	return false
}

// Allowances are the fixed monthly additions on top of base salary.
type Allowances struct {
	HRA       decimal.Decimal `json:"hra"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Bonus     decimal.Decimal `json:"bonus"`
	Others    decimal.Decimal `json:"others"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.HRA.Add(a.Transport).Add(a.Medical).Add(a.Bonus).Add(a.Others)
}

// Deductions are the fixed monthly subtractions from gross salary.
type Deductions struct {
	Tax             decimal.Decimal `json:"tax"`
	ProvidentFund   decimal.Decimal `json:"provident_fund"`
	Insurance       decimal.Decimal `json:"insurance"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	Others          decimal.Decimal `json:"others"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.ProvidentFund).Add(d.Insurance).
		Add(d.ProfessionalTax).Add(d.LoanDeduction).Add(d.Others)
}

// Payroll is one employee's salary record for a month. One row per
// (employee, month, year).
type Payroll struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int

	BaseSalary decimal.Decimal
	Allowances Allowances
	Deductions Deductions

	TotalWorkingDays float64
	UnpaidLeaveDays  float64
	UnpaidDeduction  decimal.Decimal

	GrossSalary decimal.Decimal
	NetSalary   decimal.Decimal

	Status      Status
	ProcessedAt *time.Time
	Remarks     *string

	PaymentMethod *string
	TransactionID *string
	BankAccount   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Compute re-derives gross, the unpaid-leave deduction and net from the
// current components. Net is floored at zero.
func (p *Payroll) Compute() {
	p.GrossSalary = p.BaseSalary.Add(p.Allowances.Total())

	p.UnpaidDeduction = decimal.Zero
	if p.TotalWorkingDays > 0 && p.UnpaidLeaveDays > 0 {
		perDay := p.GrossSalary.Div(decimal.NewFromFloat(p.TotalWorkingDays))
		p.UnpaidDeduction = perDay.Mul(decimal.NewFromFloat(p.UnpaidLeaveDays)).Round(2)
	}

	net := p.GrossSalary.Sub(p.Deductions.Total()).Sub(p.UnpaidDeduction)
	if net.IsNegative() {
		net = decimal.Zero
	}
	p.NetSalary = net.Round(2)
	p.GrossSalary = p.GrossSalary.Round(2)
}

// MarkPaid transitions the record to Paid, stamping ProcessedAt exactly
// once. Marking an already-paid record again keeps the original stamp.
func (p *Payroll) MarkPaid(now time.Time, transactionID string) {
	p.Status = StatusPaid
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	if p.ProcessedAt == nil {
		p.ProcessedAt = &now
	}
}

// CanBeModified reports whether components may still change.
func (p Payroll) CanBeModified() bool {
	return p.Status == StatusPending || p.Status == StatusOnHold
}

// CanBeMarkedPaid reports whether the record may transition to Paid.
func (p Payroll) CanBeMarkedPaid() bool {
	switch p.Status {
	case StatusPending, StatusProcessing, StatusOnHold:
		return true
	}
	return false
}
