package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	GetHistory(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error

	// FindOverlapping returns the id of a Pending/Approved request for the
	// employee whose inclusive date range intersects [startDate, endDate],
	// excluding excludeID. Empty string when there is none. Callers run it
	// inside the same transaction as the insert/update it guards.
	FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (string, error)

	// StatsByCategory aggregates approved days per category for a year.
	StatsByCategory(ctx context.Context, employeeID string, year int) ([]CategoryStat, error)

	// ApprovedDays sums approved leave days of one category intersecting a
	// month; payroll uses it for the unpaid-leave day count.
	ApprovedDays(ctx context.Context, employeeID string, category Category, month, year int) (float64, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetOrCreate returns the (employee, year) ledger, lazily inserting the
	// default allocations. Safe to call concurrently for the same key.
	GetOrCreate(ctx context.Context, employeeID string, year int) (Ledger, error)

	// GetForUpdate loads the ledger row locked for the current transaction.
	GetForUpdate(ctx context.Context, employeeID string, year int) (Ledger, error)

	Update(ctx context.Context, ledger Ledger) error
	ListByYear(ctx context.Context, year int) ([]Ledger, error)
	Create(ctx context.Context, ledger Ledger) (Ledger, error)
}
