package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

func strp(s string) *string { return &s }

func TestUpsertAttendanceRequestValidate(t *testing.T) {
	req := UpsertAttendanceRequest{
		EmployeeID:   "emp-1",
		Date:         "2026-03-11",
		CheckInTime:  strp("2026-03-11T09:00:00Z"),
		CheckOutTime: strp("2026-03-11T17:30:00Z"),
	}
	assert.NoError(t, req.Validate())
}

func TestUpsertAttendanceRequestValidateCheckInOnOtherDay(t *testing.T) {
	req := UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-11",
		CheckInTime: strp("2026-03-12T09:00:00Z"),
	}

	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "check_in_time", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, "must fall on the attendance date")
}

func TestUpsertAttendanceRequestValidateCheckInWithOffset(t *testing.T) {
	// The calendar day is compared in the timestamp's own zone, so a
	// late local check-in does not trip the mismatch error.
	req := UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-11",
		CheckInTime: strp("2026-03-11T22:45:00+07:00"),
	}
	assert.NoError(t, req.Validate())
}

func TestUpsertAttendanceRequestValidateFailures(t *testing.T) {
	req := UpsertAttendanceRequest{
		Date:        "11-03-2026",
		CheckInTime: strp("not-a-timestamp"),
		Status:      strp("Working"),
	}

	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := make(map[string]bool, len(verrs))
	for _, v := range verrs {
		fields[v.Field] = true
	}
	assert.True(t, fields["employee_id"])
	assert.True(t, fields["date"])
	assert.True(t, fields["check_in_time"])
	assert.True(t, fields["status"])
}
