package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestWorkedHours(t *testing.T) {
	assert.Equal(t, 8.5, WorkedHours(at(9, 0), at(17, 30)))
	assert.Equal(t, 4.0, WorkedHours(at(9, 0), at(13, 0)))
	assert.Equal(t, 0.0, WorkedHours(at(9, 0), at(9, 0)))

	// A checkout before the check-in clamps at zero.
	assert.Equal(t, 0.0, WorkedHours(at(17, 0), at(9, 0)))
}

func TestWorkedHoursRounding(t *testing.T) {
	// 7h50m = 7.8333... rounds to two decimals.
	assert.Equal(t, 7.83, WorkedHours(at(9, 0), at(16, 50)))
	// 8h10m = 8.1666...
	assert.Equal(t, 8.17, WorkedHours(at(9, 0), at(17, 10)))
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusPresent, DeriveStatus(8.5))
	assert.Equal(t, StatusPresent, DeriveStatus(8.0))
	assert.Equal(t, StatusHalfDay, DeriveStatus(7.99))
	assert.Equal(t, StatusHalfDay, DeriveStatus(4.0))
	assert.Equal(t, StatusAbsent, DeriveStatus(3.5))
	assert.Equal(t, StatusAbsent, DeriveStatus(0))
}

func TestShouldRederiveStatus(t *testing.T) {
	// New records always derive.
	assert.True(t, Attendance{Status: StatusLeave}.ShouldRederiveStatus(true))

	// Existing records only re-derive while still Absent, so a manual
	// Present or Leave never flips back.
	assert.True(t, Attendance{Status: StatusAbsent}.ShouldRederiveStatus(false))
	assert.False(t, Attendance{Status: StatusPresent}.ShouldRederiveStatus(false))
	assert.False(t, Attendance{Status: StatusHalfDay}.ShouldRederiveStatus(false))
	assert.False(t, Attendance{Status: StatusLeave}.ShouldRederiveStatus(false))
}

func TestIsCheckedIn(t *testing.T) {
	in := at(9, 0)
	out := at(17, 0)

	assert.False(t, Attendance{}.IsCheckedIn())
	assert.True(t, Attendance{CheckInTime: &in}.IsCheckedIn())
	assert.False(t, Attendance{CheckInTime: &in, CheckOutTime: &out}.IsCheckedIn())
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 14, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DayOf(ts))
}
