package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNumberOfDays(t *testing.T) {
	assert.Equal(t, 1.0, NumberOfDays(date("2025-03-10"), date("2025-03-10")))
	assert.Equal(t, 3.0, NumberOfDays(date("2025-03-10"), date("2025-03-12")))
	assert.Equal(t, 31.0, NumberOfDays(date("2025-01-01"), date("2025-01-31")))

	// Degenerate ranges floor at half a day.
	assert.Equal(t, 0.5, NumberOfDays(date("2025-03-10"), date("2025-03-08")))
}

func TestNumberOfDaysHalfDay(t *testing.T) {
	// A half-day request carries a 12-hour offset between endpoints.
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.5, NumberOfDays(start, end))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"disjoint before", "2025-03-01", "2025-03-05", "2025-03-06", "2025-03-10", false},
		{"disjoint after", "2025-03-06", "2025-03-10", "2025-03-01", "2025-03-05", false},
		{"touching endpoints", "2025-03-01", "2025-03-05", "2025-03-05", "2025-03-10", true},
		{"contained", "2025-03-01", "2025-03-10", "2025-03-03", "2025-03-04", true},
		{"partial", "2025-03-01", "2025-03-05", "2025-03-04", "2025-03-08", true},
		{"identical", "2025-03-01", "2025-03-05", "2025-03-01", "2025-03-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryTracked(t *testing.T) {
	assert.True(t, CategoryPaid.Tracked())
	assert.True(t, CategorySick.Tracked())
	assert.True(t, CategoryMaternity.Tracked())
	assert.False(t, CategoryUnpaid.Tracked())
	assert.False(t, Category("Sabbatical").Tracked())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestCanBeCancelled(t *testing.T) {
	now := date("2025-03-10")

	pending := LeaveRequest{Status: StatusPending, StartDate: date("2025-03-01")}
	assert.True(t, pending.CanBeCancelled(now))

	futureApproved := LeaveRequest{Status: StatusApproved, StartDate: date("2025-03-15")}
	assert.True(t, futureApproved.CanBeCancelled(now))

	startedApproved := LeaveRequest{Status: StatusApproved, StartDate: date("2025-03-10")}
	assert.False(t, startedApproved.CanBeCancelled(now))

	rejected := LeaveRequest{Status: StatusRejected, StartDate: date("2025-03-15")}
	assert.False(t, rejected.CanBeCancelled(now))
}

func TestCanBeEdited(t *testing.T) {
	assert.True(t, LeaveRequest{Status: StatusPending}.CanBeEdited())
	assert.False(t, LeaveRequest{Status: StatusApproved}.CanBeEdited())
	assert.False(t, LeaveRequest{Status: StatusCancelled}.CanBeEdited())
}
