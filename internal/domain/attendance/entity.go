package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
	StatusLeave   Status = "Leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// Thresholds for the automatic status derivation, in worked hours.
const (
	FullDayHours = 8
	HalfDayHours = 4
)

// GeoPoint is an optional punch location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Attendance entity. One row per (employee, date).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	WorkingHours float64
	Status       Status
	Remarks      *string

	CheckInLocation  *GeoPoint
	CheckOutLocation *GeoPoint

	ModifiedBy *string
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// WorkedHours derives the hours between two punches, rounded to two
// decimals and floored at zero.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

// DeriveStatus maps worked hours to an attendance status.
func DeriveStatus(workedHours float64) Status {
	switch {
	case workedHours >= FullDayHours:
		return StatusPresent
	case workedHours >= HalfDayHours:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

// ShouldRederiveStatus guards the automatic derivation: it only applies
// to new records or ones still marked Absent, so a manually set
// Present/Half-day/Leave is never overwritten by a late checkout.
func (a Attendance) ShouldRederiveStatus(isNew bool) bool {
	return isNew || a.Status == StatusAbsent
}

// IsCheckedIn reports an open punch: checked in, not yet checked out.
func (a Attendance) IsCheckedIn() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

// DayOf truncates a timestamp to its calendar day in the given location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
