package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLedgerNotFound       = errors.New("leave balance record not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingLeave     = errors.New("overlapping leave request exists")
	ErrInvalidState         = errors.New("operation not permitted in current state")
	ErrNotCancellable       = errors.New("leave request can no longer be cancelled")
	ErrNotEditable          = errors.New("only pending leave requests can be edited")
	ErrCategoryNotTracked   = errors.New("leave category has no balance bucket")
)

// InsufficientBalanceError carries enough detail for the caller to
// render a precise message ("remaining Sick balance is 2.0, requested 3.0").
type InsufficientBalanceError struct {
	Category  Category
	Remaining float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s leave balance: remaining %.1f, requested %.1f",
		e.Category, e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// OverlapError names the conflicting request so the caller can point at it.
type OverlapError struct {
	ConflictingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping leave request exists (conflicting request %s)", e.ConflictingID)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingLeave
}

// InvalidStateError reports a transition attempted from the wrong state.
type InvalidStateError struct {
	Current  Status
	Expected Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("leave request is %s, expected %s", e.Current, e.Expected)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// CategoryError reports an operation against a category with no ledger bucket.
type CategoryError struct {
	Category Category
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("leave category %q has no balance bucket", e.Category)
}

func (e *CategoryError) Is(target error) bool {
	return target == ErrCategoryNotTracked
}
