package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for attendances table
type AttendanceRepository interface {
	// Create inserts a record, surfacing ErrDuplicateAttendance when one
	// already exists for (employee, date).
	Create(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, record Attendance) error
	SoftDelete(ctx context.Context, id string) error

	// MonthlySummary aggregates statuses and hours for one employee-month.
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
}
