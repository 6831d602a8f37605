package leave

import (
	"context"
	"fmt"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

type BalanceService struct {
	db *database.DB
	leave.LeaveBalanceRepository
	recorder *activitysvc.Recorder
}

func NewBalanceService(
	db *database.DB,
	balanceRepo leave.LeaveBalanceRepository,
	recorder *activitysvc.Recorder,
) *BalanceService {
	return &BalanceService{
		db:                     db,
		LeaveBalanceRepository: balanceRepo,
		recorder:               recorder,
	}
}

// GetBalance returns the (employee, year) ledger, creating it with the
// default allocations on first touch.
func (s *BalanceService) GetBalance(ctx context.Context, employeeID string, year int) (leave.Ledger, error) {
	return s.GetOrCreate(ctx, employeeID, year)
}

// Adjust is the administrative override of one bucket's total
// allocation. Used days are preserved; remaining is re-derived.
func (s *BalanceService) Adjust(ctx context.Context, actorID string, req leave.AdjustAllocationRequest) (leave.Ledger, error) {
	var ledger leave.Ledger

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.GetOrCreate(txCtx, req.EmployeeID, req.Year); err != nil {
			return fmt.Errorf("failed to ensure leave balance: %w", err)
		}

		var err error
		ledger, err = s.GetForUpdate(txCtx, req.EmployeeID, req.Year)
		if err != nil {
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}

		if err := ledger.AdjustAllocation(leave.Category(req.Category), req.NewTotal); err != nil {
			return err
		}

		if err := s.Update(txCtx, ledger); err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Ledger{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionBalanceAdjusted,
		EntityType: "leave_balance",
		EntityID:   ledger.ID,
		Details: map[string]any{
			"category":  req.Category,
			"new_total": req.NewTotal,
		},
	})

	return ledger, nil
}

// Rollover creates next-year ledgers from every ledger of the source
// year, carrying forward unused paid days up to the cap. Employees
// without a source-year ledger are left alone until their first touch
// mints one; employees who already have a target-year ledger are
// skipped.
func (s *BalanceService) Rollover(ctx context.Context, actorID string, fromYear int) (int, error) {
	prevLedgers, err := s.ListByYear(ctx, fromYear)
	if err != nil {
		return 0, fmt.Errorf("failed to list source balances: %w", err)
	}

	existing, err := s.ListByYear(ctx, fromYear+1)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing balances: %w", err)
	}
	haveLedger := make(map[string]bool, len(existing))
	for _, l := range existing {
		haveLedger[l.EmployeeID] = true
	}

	rolled := 0
	for _, prev := range prevLedgers {
		if haveLedger[prev.EmployeeID] {
			continue
		}

		next := leave.NewLedgerFromPrevious(prev, fromYear+1)
		if _, err := s.Create(ctx, next); err != nil {
			return rolled, fmt.Errorf("failed to create balance for employee %s: %w", prev.EmployeeID, err)
		}
		rolled++
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionYearRolledOver,
		EntityType: "leave_balance",
		EntityID:   fmt.Sprintf("%d", fromYear+1),
		Details: map[string]any{
			"from_year": fromYear,
			"rolled":    rolled,
		},
	})

	return rolled, nil
}

// AllBalances lists every employee ledger for a year.
func (s *BalanceService) AllBalances(ctx context.Context, year int) ([]leave.Ledger, error) {
	return s.ListByYear(ctx, year)
}
