package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerDefaults(t *testing.T) {
	l := NewLedger("emp-1", 2025)

	assert.Equal(t, float64(DefaultPaidAllocation), l.PaidLeave.Total)
	assert.Equal(t, float64(DefaultSickAllocation), l.SickLeave.Total)
	assert.Equal(t, float64(DefaultCasualAllocation), l.CasualLeave.Total)
	assert.Equal(t, float64(DefaultPaidAllocation), l.PaidLeave.Remaining)
	assert.Zero(t, l.TotalLeaveTaken)
	assert.Zero(t, l.CarryForward)
}

func TestLedgerDeduct(t *testing.T) {
	l := NewLedger("emp-1", 2025)

	require.NoError(t, l.Deduct(CategoryPaid, 3))
	assert.Equal(t, 3.0, l.PaidLeave.Used)
	assert.Equal(t, 9.0, l.PaidLeave.Remaining)
	assert.Equal(t, 3.0, l.TotalLeaveTaken)
}

func TestLedgerDeductInsufficient(t *testing.T) {
	l := NewLedger("emp-1", 2025)
	require.NoError(t, l.Deduct(CategorySick, 5))

	err := l.Deduct(CategorySick, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var insufficientErr *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, CategorySick, insufficientErr.Category)
	assert.Equal(t, 2.0, insufficientErr.Remaining)
	assert.Equal(t, 3.0, insufficientErr.Requested)

	// Failed deduction leaves the bucket untouched.
	assert.Equal(t, 5.0, l.SickLeave.Used)
}

func TestLedgerDeductUnpaidIsNoop(t *testing.T) {
	l := NewLedger("emp-1", 2025)

	require.NoError(t, l.Deduct(CategoryUnpaid, 30))
	assert.Zero(t, l.TotalLeaveTaken)
	assert.Equal(t, float64(DefaultPaidAllocation), l.PaidLeave.Remaining)
}

func TestLedgerDeductUnknownCategory(t *testing.T) {
	l := NewLedger("emp-1", 2025)

	err := l.Deduct(Category("Sabbatical"), 1)
	assert.ErrorIs(t, err, ErrCategoryNotTracked)
}

func TestLedgerRestore(t *testing.T) {
	l := NewLedger("emp-1", 2025)
	require.NoError(t, l.Deduct(CategoryPaid, 4))

	require.NoError(t, l.Restore(CategoryPaid, 4))
	assert.Zero(t, l.PaidLeave.Used)
	assert.Equal(t, float64(DefaultPaidAllocation), l.PaidLeave.Remaining)
}

func TestLedgerRestoreClampsAtZero(t *testing.T) {
	l := NewLedger("emp-1", 2025)
	require.NoError(t, l.Deduct(CategoryPaid, 2))

	require.NoError(t, l.Restore(CategoryPaid, 10))
	assert.Zero(t, l.PaidLeave.Used)
	assert.Equal(t, float64(DefaultPaidAllocation), l.PaidLeave.Remaining)
}

func TestLedgerAdjustAllocation(t *testing.T) {
	l := NewLedger("emp-1", 2025)
	require.NoError(t, l.Deduct(CategoryPaid, 5))

	// Raising the total keeps used days and re-derives remaining.
	require.NoError(t, l.AdjustAllocation(CategoryPaid, 20))
	assert.Equal(t, 20.0, l.PaidLeave.Total)
	assert.Equal(t, 5.0, l.PaidLeave.Used)
	assert.Equal(t, 15.0, l.PaidLeave.Remaining)

	// Lowering below used clamps remaining at zero, never negative.
	require.NoError(t, l.AdjustAllocation(CategoryPaid, 3))
	assert.Zero(t, l.PaidLeave.Remaining)
	assert.Equal(t, 5.0, l.PaidLeave.Used)
}

func TestLedgerAdjustAllocationNegativeTotal(t *testing.T) {
	l := NewLedger("emp-1", 2025)

	require.NoError(t, l.AdjustAllocation(CategoryCasual, -5))
	assert.Zero(t, l.CasualLeave.Total)
	assert.Zero(t, l.CasualLeave.Remaining)
}

func TestNewLedgerFromPrevious(t *testing.T) {
	prev := NewLedger("emp-1", 2025)
	require.NoError(t, prev.Deduct(CategoryPaid, 4))
	require.NoError(t, prev.Deduct(CategorySick, 6))

	next := NewLedgerFromPrevious(prev, 2026)

	// 8 unused paid days carry into the new year's total.
	assert.Equal(t, 8.0, next.CarryForward)
	assert.Equal(t, float64(DefaultPaidAllocation)+8, next.PaidLeave.Total)
	assert.Zero(t, next.PaidLeave.Used)

	// Sick never carries.
	assert.Equal(t, float64(DefaultSickAllocation), next.SickLeave.Total)
	assert.Equal(t, 2026, next.Year)
	assert.Equal(t, "emp-1", next.EmployeeID)
}

func TestNewLedgerFromPreviousCapsCarryForward(t *testing.T) {
	prev := NewLedger("emp-1", 2025)
	require.NoError(t, prev.AdjustAllocation(CategoryPaid, 40))

	next := NewLedgerFromPrevious(prev, 2026)

	assert.Equal(t, float64(MaxCarryForward), next.CarryForward)
	assert.Equal(t, float64(DefaultPaidAllocation+MaxCarryForward), next.PaidLeave.Total)
}

func TestLedgerTotals(t *testing.T) {
	l := NewLedger("emp-1", 2025)
	require.NoError(t, l.Deduct(CategoryPaid, 2))
	require.NoError(t, l.Deduct(CategoryCasual, 1))

	assert.Equal(t, l.TotalAllocated()-3, l.TotalAvailable())
	assert.Equal(t, 3.0, l.TotalLeaveTaken)
}
