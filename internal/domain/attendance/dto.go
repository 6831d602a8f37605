package attendance

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

// sameDay compares calendar date components, ignoring clock and zone.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type CheckInRequest struct {
	Location *GeoPoint `json:"location,omitempty"`
	Remarks  string    `json:"remarks,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return nil
}

type CheckOutRequest struct {
	Location *GeoPoint `json:"location,omitempty"`
	Remarks  string    `json:"remarks,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return nil
}

// UpsertAttendanceRequest is the administrative create-or-correct
// operation, including setting a status by hand.
type UpsertAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *string `json:"status,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

func (r *UpsertAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	date, dateOK := validator.IsValidDate(r.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.CheckInTime != nil {
		checkIn, ok := validator.IsValidDateTime(*r.CheckInTime)
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be a valid RFC3339 timestamp",
			})
		case dateOK && !sameDay(checkIn, date):
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must fall on the attendance date",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be a valid RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Present, Absent, Half-day, Leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AttendanceFilter narrows list queries.
type AttendanceFilter struct {
	EmployeeID *string
	Status     *string
	DateFrom   *string
	DateTo     *string
	Month      *int
	Year       *int
	Page       int
	Limit      int
}

// MonthlySummary aggregates one employee's attendance for a month.
type MonthlySummary struct {
	EmployeeID   string  `json:"employee_id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	PresentDays  int     `json:"present_days"`
	AbsentDays   int     `json:"absent_days"`
	HalfDays     int     `json:"half_days"`
	LeaveDays    int     `json:"leave_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}
