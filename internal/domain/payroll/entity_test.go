package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestComputeGrossAndNet(t *testing.T) {
	p := Payroll{
		BaseSalary: d(5000),
		Allowances: Allowances{HRA: d(300), Transport: d(200)},
		Deductions: Deductions{Tax: d(250), ProvidentFund: d(50)},
	}
	p.Compute()

	assert.True(t, p.GrossSalary.Equal(d(5500)), "gross = %s", p.GrossSalary)
	assert.True(t, p.NetSalary.Equal(d(5200)), "net = %s", p.NetSalary)
	assert.True(t, p.UnpaidDeduction.IsZero())
}

func TestComputeUnpaidLeaveDeduction(t *testing.T) {
	p := Payroll{
		BaseSalary:       d(5000),
		Allowances:       Allowances{HRA: d(500)},
		Deductions:       Deductions{Tax: d(300)},
		TotalWorkingDays: 30,
		UnpaidLeaveDays:  2,
	}
	p.Compute()

	// gross 5500, per-day 5500/30, two unpaid days -> 366.67 withheld.
	require.True(t, p.GrossSalary.Equal(d(5500)))
	assert.Equal(t, "366.67", p.UnpaidDeduction.StringFixed(2))
	assert.Equal(t, "4833.33", p.NetSalary.StringFixed(2))
}

func TestComputeNetNeverNegative(t *testing.T) {
	p := Payroll{
		BaseSalary: d(1000),
		Deductions: Deductions{Tax: d(2000)},
	}
	p.Compute()

	assert.True(t, p.NetSalary.IsZero())
}

func TestComputeIsIdempotent(t *testing.T) {
	p := Payroll{
		BaseSalary:       d(4000),
		Allowances:       Allowances{Bonus: d(100)},
		TotalWorkingDays: 31,
		UnpaidLeaveDays:  1,
	}
	p.Compute()
	first := p.NetSalary

	p.Compute()
	assert.True(t, p.NetSalary.Equal(first))
}

func TestMarkPaidStampsOnce(t *testing.T) {
	p := Payroll{Status: StatusPending}

	first := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	p.MarkPaid(first, "TXN-1001")
	require.NotNil(t, p.ProcessedAt)
	assert.Equal(t, first, *p.ProcessedAt)
	assert.Equal(t, StatusPaid, p.Status)
	require.NotNil(t, p.TransactionID)
	assert.Equal(t, "TXN-1001", *p.TransactionID)

	// A second transition keeps the original stamp.
	p.MarkPaid(first.Add(48*time.Hour), "")
	assert.Equal(t, first, *p.ProcessedAt)
	assert.Equal(t, "TXN-1001", *p.TransactionID)
}

func TestCanBeModified(t *testing.T) {
	assert.True(t, Payroll{Status: StatusPending}.CanBeModified())
	assert.True(t, Payroll{Status: StatusOnHold}.CanBeModified())
	assert.False(t, Payroll{Status: StatusProcessing}.CanBeModified())
	assert.False(t, Payroll{Status: StatusFailed}.CanBeModified())
	assert.False(t, Payroll{Status: StatusPaid}.CanBeModified())
}

func TestCanBeMarkedPaid(t *testing.T) {
	assert.True(t, Payroll{Status: StatusPending}.CanBeMarkedPaid())
	assert.True(t, Payroll{Status: StatusProcessing}.CanBeMarkedPaid())
	assert.True(t, Payroll{Status: StatusOnHold}.CanBeMarkedPaid())
	assert.False(t, Payroll{Status: StatusFailed}.CanBeMarkedPaid())
	assert.False(t, Payroll{Status: StatusPaid}.CanBeMarkedPaid())
}

func TestAllowancesDeductionsTotals(t *testing.T) {
	a := Allowances{HRA: d(1), Transport: d(2), Medical: d(3), Bonus: d(4), Others: d(5)}
	assert.True(t, a.Total().Equal(d(15)))

	de := Deductions{Tax: d(1), ProvidentFund: d(2), Insurance: d(3), ProfessionalTax: d(4), LoanDeduction: d(5), Others: d(6)}
	assert.True(t, de.Total().Equal(d(21)))
}
