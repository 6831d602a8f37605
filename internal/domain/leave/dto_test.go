package leave

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	req := CreateLeaveRequestRequest{
		Category:  "Paid",
		StartDate: futureDate(7),
		EndDate:   futureDate(9),
		Reason:    "Family function out of town",
	}
	assert.NoError(t, req.Validate())
}

func TestCreateLeaveRequestValidateFailures(t *testing.T) {
	req := CreateLeaveRequestRequest{
		Category:  "Sabbatical",
		StartDate: futureDate(9),
		EndDate:   futureDate(7),
		Reason:    "too short",
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "reason")
}

func TestCreateLeaveRequestValidatePastStart(t *testing.T) {
	req := CreateLeaveRequestRequest{
		Category:  "Paid",
		StartDate: futureDate(-3),
		EndDate:   futureDate(2),
		Reason:    "Family function out of town",
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "start_date")
}

func TestCreateLeaveRequestValidateReasonTooLong(t *testing.T) {
	req := CreateLeaveRequestRequest{
		Category:  "Sick",
		StartDate: futureDate(7),
		EndDate:   futureDate(7),
		Reason:    strings.Repeat("x", MaxReasonLength+1),
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "reason")
}

func TestUpdateLeaveRequestValidate(t *testing.T) {
	start := "2025-04-01"
	req := UpdateLeaveRequestRequest{ID: "req-1", StartDate: &start}
	assert.NoError(t, req.Validate())

	bad := "not-a-date"
	req = UpdateLeaveRequestRequest{ID: "req-1", StartDate: &bad}
	assert.Error(t, req.Validate())

	req = UpdateLeaveRequestRequest{}
	assert.Error(t, req.Validate())
}

func TestAdjustAllocationValidate(t *testing.T) {
	req := AdjustAllocationRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Category:   "Paid",
		NewTotal:   18,
	}
	assert.NoError(t, req.Validate())

	// Unpaid leave has no bucket to adjust.
	req.Category = "Unpaid"
	assert.Error(t, req.Validate())

	req.Category = "Paid"
	req.NewTotal = -1
	assert.Error(t, req.Validate())

	req.NewTotal = 18
	req.Year = 1999
	assert.Error(t, req.Validate())
}
