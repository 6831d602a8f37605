package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
	notificationsvc "github.com/peoplehq/hrms-backend-go/internal/service/notification"
)

var testLeaveDB *database.DB

func leaveTestInit(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testLeaveDB != nil {
		return
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"leave_requests", "leave_balances", "notifications", "activity_logs", "users"}

	for _, table := range tables {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Some tables might not exist, skip
			continue
		}
	}
}

func createLeaveTestEmployee(t *testing.T, ctx context.Context) string {
	t.Helper()
	var id string
	n := time.Now().UnixNano()
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO users (
			id, employee_code, email, password_hash, role,
			first_name, last_name, joining_date, is_active, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, 'x', 'Employee',
			'Test', 'Employee', NOW(), TRUE, NOW(), NOW()
		) RETURNING id
	`, fmt.Sprintf("EMP%09d", n%1000000000), fmt.Sprintf("leave-%d@example.com", n)).Scan(&id)
	require.NoError(t, err)
	return id
}

func newTestRequestService() *RequestService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	requestRepo := postgresql.NewLeaveRequestRepository(testLeaveDB)
	balanceRepo := postgresql.NewLeaveBalanceRepository(testLeaveDB)
	recorder := activitysvc.NewRecorder(postgresql.NewActivityRepository(testLeaveDB), logger)
	notifier := notificationsvc.NewService(postgresql.NewNotificationRepository(testLeaveDB), logger)
	return NewRequestService(testLeaveDB, requestRepo, balanceRepo, recorder, notifier)
}

// leaveTestRange returns an inclusive future date range covering the
// given number of days, plus the ledger year it falls in.
func leaveTestRange(daysAhead, days int) (string, string, int) {
	start := time.Now().UTC().AddDate(0, 0, daysAhead)
	end := start.AddDate(0, 0, days-1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), start.Year()
}

func TestRequestService_SubmitBeyondBalanceStaysPending(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx)
	svc := newTestRequestService()

	// 20 requested days against the default 12-day paid allocation.
	// Submission does not consume balance, so the request lands Pending.
	start, end, year := leaveTestRange(30, 20)
	request, err := svc.Submit(ctx, employeeID, leave.CreateLeaveRequestRequest{
		Category:  string(leave.CategoryPaid),
		StartDate: start,
		EndDate:   end,
		Reason:    "extended family trip abroad",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, request.Status)
	assert.Equal(t, float64(20), request.NumberOfDays)

	ledger, err := svc.LeaveBalanceRepository.GetOrCreate(ctx, employeeID, year)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ledger.PaidLeave.Used)
	assert.Equal(t, float64(leave.DefaultPaidAllocation), ledger.PaidLeave.Remaining)
}

func TestRequestService_ApproveInsufficientBalanceRollsBack(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx)
	approverID := createLeaveTestEmployee(t, ctx)
	svc := newTestRequestService()

	start, end, year := leaveTestRange(30, 20)
	request, err := svc.Submit(ctx, employeeID, leave.CreateLeaveRequestRequest{
		Category:  string(leave.CategoryPaid),
		StartDate: start,
		EndDate:   end,
		Reason:    "extended family trip abroad",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, request.ID, approverID, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The whole transaction rolled back: no Approved-but-not-deducted
	// state, no half-consumed ledger.
	reloaded, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, reloaded.Status)
	assert.Nil(t, reloaded.ApprovedAt)

	ledger, err := svc.LeaveBalanceRepository.GetOrCreate(ctx, employeeID, year)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ledger.PaidLeave.Used)
	assert.Equal(t, float64(leave.DefaultPaidAllocation), ledger.PaidLeave.Remaining)
}

func TestRequestService_ApproveThenCancelRestoresBalance(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx)
	approverID := createLeaveTestEmployee(t, ctx)
	svc := newTestRequestService()

	start, end, year := leaveTestRange(30, 3)
	request, err := svc.Submit(ctx, employeeID, leave.CreateLeaveRequestRequest{
		Category:  string(leave.CategoryPaid),
		StartDate: start,
		EndDate:   end,
		Reason:    "attending a wedding out of town",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, request.ID, approverID, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)

	ledger, err := svc.LeaveBalanceRepository.GetOrCreate(ctx, employeeID, year)
	require.NoError(t, err)
	assert.Equal(t, float64(3), ledger.PaidLeave.Used)
	assert.Equal(t, float64(leave.DefaultPaidAllocation-3), ledger.PaidLeave.Remaining)

	cancelled, err := svc.Cancel(ctx, request.ID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)

	ledger, err = svc.LeaveBalanceRepository.GetOrCreate(ctx, employeeID, year)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ledger.PaidLeave.Used)
	assert.Equal(t, float64(leave.DefaultPaidAllocation), ledger.PaidLeave.Remaining)
}

func TestRequestService_SubmitOverlappingSiblingRejected(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx)
	svc := newTestRequestService()

	start, end, _ := leaveTestRange(30, 5)
	_, err := svc.Submit(ctx, employeeID, leave.CreateLeaveRequestRequest{
		Category:  string(leave.CategoryPaid),
		StartDate: start,
		EndDate:   end,
		Reason:    "attending a wedding out of town",
	})
	require.NoError(t, err)

	// Second request sharing one day with the first.
	start2, end2, _ := leaveTestRange(34, 4)
	_, err = svc.Submit(ctx, employeeID, leave.CreateLeaveRequestRequest{
		Category:  string(leave.CategorySick),
		StartDate: start2,
		EndDate:   end2,
		Reason:    "scheduled medical procedure",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}
