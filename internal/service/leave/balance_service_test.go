package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

func newTestBalanceService() *BalanceService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	balanceRepo := postgresql.NewLeaveBalanceRepository(testLeaveDB)
	recorder := activitysvc.NewRecorder(postgresql.NewActivityRepository(testLeaveDB), logger)
	return NewBalanceService(testLeaveDB, balanceRepo, recorder)
}

func TestBalanceService_RolloverSkipsEmployeesWithoutSourceLedger(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	withLedger := createLeaveTestEmployee(t, ctx)
	withoutLedger := createLeaveTestEmployee(t, ctx)
	svc := newTestBalanceService()

	const fromYear = 2030

	ledger, err := svc.GetOrCreate(ctx, withLedger, fromYear)
	require.NoError(t, err)
	require.NoError(t, ledger.Deduct(leave.CategoryPaid, 4))
	require.NoError(t, svc.Update(ctx, ledger))

	rolled, err := svc.Rollover(ctx, withLedger, fromYear)
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	// Only the employee who actually held a source-year ledger gets a
	// next-year one; nobody is minted a ledger as a side effect.
	next, err := svc.ListByYear(ctx, fromYear+1)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, withLedger, next[0].EmployeeID)
	assert.Equal(t, float64(8), next[0].CarryForward)
	assert.Equal(t, float64(leave.DefaultPaidAllocation+8), next[0].PaidLeave.Total)
	assert.Equal(t, float64(0), next[0].PaidLeave.Used)

	prev, err := svc.ListByYear(ctx, fromYear)
	require.NoError(t, err)
	require.Len(t, prev, 1)
	assert.NotEqual(t, withoutLedger, prev[0].EmployeeID)
}

func TestBalanceService_RolloverIsIdempotent(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx)
	svc := newTestBalanceService()

	const fromYear = 2030

	_, err := svc.GetOrCreate(ctx, employeeID, fromYear)
	require.NoError(t, err)

	rolled, err := svc.Rollover(ctx, employeeID, fromYear)
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	rolled, err = svc.Rollover(ctx, employeeID, fromYear)
	require.NoError(t, err)
	assert.Equal(t, 0, rolled)
}
