package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyCheckedIn    = errors.New("already checked in for today")
	ErrNotCheckedIn        = errors.New("no open check-in for today")
	ErrAlreadyCheckedOut   = errors.New("already checked out for today")
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")
	ErrCheckOutBeforeIn    = errors.New("check-out time must be after check-in time")
)
