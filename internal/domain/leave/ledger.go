package leave

import (
	"time"
)

// Default yearly allocations per category, in days.
const (
	DefaultPaidAllocation   = 12
	DefaultSickAllocation   = 7
	DefaultCasualAllocation = 10

	// MaxCarryForward caps unused paid days carried into the next year.
	MaxCarryForward = 15
)

// Balance is one {total, used, remaining} triple of a ledger bucket.
// Remaining is derived; call Ledger.Recompute after touching Total or Used.
type Balance struct {
	Total     float64
	Used      float64
	Remaining float64
}

// Ledger holds per-category leave balances for one employee and year.
// One row per (employee, year).
type Ledger struct {
	ID         string
	EmployeeID string
	Year       int

	PaidLeave      Balance
	SickLeave      Balance
	CasualLeave    Balance
	MaternityLeave Balance
	PaternityLeave Balance

	CarryForward    float64
	TotalLeaveTaken float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLedger creates a ledger with the default allocations.
func NewLedger(employeeID string, year int) Ledger {
	l := Ledger{
		EmployeeID: employeeID,
		Year:       year,
		PaidLeave:  Balance{Total: DefaultPaidAllocation},
		SickLeave:  Balance{Total: DefaultSickAllocation},
		CasualLeave: Balance{
			Total: DefaultCasualAllocation,
		},
	}
	l.Recompute()
	return l
}

// NewLedgerFromPrevious creates the next year's ledger, carrying forward
// up to MaxCarryForward unused paid days. All other categories reset to
// their base allocation.
func NewLedgerFromPrevious(prev Ledger, year int) Ledger {
	carry := prev.PaidLeave.Remaining
	if carry > MaxCarryForward {
		carry = MaxCarryForward
	}
	if carry < 0 {
		carry = 0
	}

	l := NewLedger(prev.EmployeeID, year)
	l.PaidLeave.Total = DefaultPaidAllocation + carry
	l.CarryForward = carry
	l.Recompute()
	return l
}

// Bucket returns the balance bucket for a category. The second return
// is false for Unpaid and unknown categories, which have no bucket.
func (l *Ledger) Bucket(c Category) (*Balance, bool) {
	switch c {
	case CategoryPaid:
		return &l.PaidLeave, true
	case CategorySick:
		return &l.SickLeave, true
	case CategoryCasual:
		return &l.CasualLeave, true
	case CategoryMaternity:
		return &l.MaternityLeave, true
	case CategoryPaternity:
		return &l.PaternityLeave, true
	}
	return nil, false
}

func (l *Ledger) buckets() []*Balance {
	return []*Balance{
		&l.PaidLeave,
		&l.SickLeave,
		&l.CasualLeave,
		&l.MaternityLeave,
		&l.PaternityLeave,
	}
}

// Recompute re-derives remaining = max(0, total-used) for every bucket
// and the denormalized total-used counter. Every mutating operation
// calls this before the ledger is persisted.
func (l *Ledger) Recompute() {
	l.TotalLeaveTaken = 0
	for _, b := range l.buckets() {
		b.Remaining = b.Total - b.Used
		if b.Remaining < 0 {
			b.Remaining = 0
		}
		l.TotalLeaveTaken += b.Used
	}
}

// Deduct consumes days from a category bucket. Unpaid leave never
// checks or touches the ledger.
func (l *Ledger) Deduct(c Category, days float64) error {
	if c == CategoryUnpaid {
		return nil
	}

	b, ok := l.Bucket(c)
	if !ok {
		return &CategoryError{Category: c}
	}

	if b.Remaining < days {
		return &InsufficientBalanceError{
			Category:  c,
			Remaining: b.Remaining,
			Requested: days,
		}
	}

	b.Used += days
	l.Recompute()
	return nil
}

// Restore returns days to a category bucket, clamping at zero rather
// than raising on over-restoration.
func (l *Ledger) Restore(c Category, days float64) error {
	if c == CategoryUnpaid {
		return nil
	}

	b, ok := l.Bucket(c)
	if !ok {
		return &CategoryError{Category: c}
	}

	b.Used -= days
	if b.Used < 0 {
		b.Used = 0
	}
	l.Recompute()
	return nil
}

// AdjustAllocation is the administrative override of a bucket's total.
func (l *Ledger) AdjustAllocation(c Category, newTotal float64) error {
	b, ok := l.Bucket(c)
	if !ok {
		return &CategoryError{Category: c}
	}

	if newTotal < 0 {
		newTotal = 0
	}
	b.Total = newTotal
	l.Recompute()
	return nil
}

// TotalAvailable sums remaining days across every tracked category.
func (l *Ledger) TotalAvailable() float64 {
	var sum float64
	for _, b := range l.buckets() {
		sum += b.Remaining
	}
	return sum
}

// TotalAllocated sums allocated days across every tracked category.
func (l *Ledger) TotalAllocated() float64 {
	var sum float64
	for _, b := range l.buckets() {
		sum += b.Total
	}
	return sum
}
