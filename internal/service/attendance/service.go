package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

type Service struct {
	db *database.DB
	attendance.AttendanceRepository
	recorder *activitysvc.Recorder
}

func NewService(db *database.DB, repo attendance.AttendanceRepository, recorder *activitysvc.Recorder) *Service {
	return &Service{
		db:                   db,
		AttendanceRepository: repo,
		recorder:             recorder,
	}
}

// CheckIn opens today's attendance record with a provisional Present
// status. A second check-in on the same day is rejected; the unique
// (employee, date) constraint backs this up under concurrency.
func (s *Service) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.Attendance, error) {
	now := time.Now()
	today := attendance.DayOf(now)

	existing, err := s.GetByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		if existing.CheckInTime != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		// Today's record exists without a punch (admin-created); attach
		// the check-in to it instead of inserting a duplicate.
		existing.CheckInTime = &now
		existing.CheckInLocation = req.Location
		existing.Status = attendance.StatusPresent
		if req.Remarks != "" {
			existing.Remarks = &req.Remarks
		}
		if err := s.Update(ctx, existing); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		s.recorder.Record(ctx, activity.Entry{
			ActorID:    employeeID,
			Action:     activity.ActionCheckIn,
			EntityType: "attendance",
			EntityID:   existing.ID,
		})
		return existing, nil
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		EmployeeID:      employeeID,
		Date:            today,
		CheckInTime:     &now,
		Status:          attendance.StatusPresent,
		CheckInLocation: req.Location,
	}
	if req.Remarks != "" {
		record.Remarks = &req.Remarks
	}

	created, err := s.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    employeeID,
		Action:     activity.ActionCheckIn,
		EntityType: "attendance",
		EntityID:   created.ID,
	})

	return created, nil
}

// CheckOut closes today's open record, derives worked hours and, for
// records still marked Absent, re-derives the status from the hours.
func (s *Service) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	now := time.Now()
	today := attendance.DayOf(now)

	record, err := s.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, err
	}

	if record.CheckInTime == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	if !now.After(*record.CheckInTime) {
		return attendance.Attendance{}, attendance.ErrCheckOutBeforeIn
	}

	record.CheckOutTime = &now
	record.CheckOutLocation = req.Location
	record.WorkingHours = attendance.WorkedHours(*record.CheckInTime, now)
	if record.ShouldRederiveStatus(false) {
		record.Status = attendance.DeriveStatus(record.WorkingHours)
	}
	if req.Remarks != "" {
		record.Remarks = &req.Remarks
	}

	if err := s.Update(ctx, record); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    employeeID,
		Action:     activity.ActionCheckOut,
		EntityType: "attendance",
		EntityID:   record.ID,
		Details:    map[string]any{"working_hours": record.WorkingHours},
	})

	return record, nil
}

// Upsert is the administrative create-or-correct path. A manually set
// status sticks; otherwise the status is derived from the punches on
// new records and on records still marked Absent.
func (s *Service) Upsert(ctx context.Context, actorID string, req attendance.UpsertAttendanceRequest) (attendance.Attendance, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to parse date: %w", err)
	}

	record, err := s.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	isNew := false
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		isNew = true
		record = attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       date,
			Status:     attendance.StatusAbsent,
		}
	}

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to parse check-in time: %w", err)
		}
		record.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to parse check-out time: %w", err)
		}
		record.CheckOutTime = &t
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}

	if record.CheckInTime != nil && record.CheckOutTime != nil {
		if record.CheckOutTime.Before(*record.CheckInTime) {
			return attendance.Attendance{}, attendance.ErrCheckOutBeforeIn
		}
		record.WorkingHours = attendance.WorkedHours(*record.CheckInTime, *record.CheckOutTime)
	}

	switch {
	case req.Status != nil:
		record.Status = attendance.Status(*req.Status)
	case record.CheckInTime != nil && record.CheckOutTime != nil && record.ShouldRederiveStatus(isNew):
		record.Status = attendance.DeriveStatus(record.WorkingHours)
	}

	record.ModifiedBy = &actorID

	if isNew {
		record, err = s.Create(ctx, record)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	} else {
		if err := s.Update(ctx, record); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionAttendanceEdited,
		EntityType: "attendance",
		EntityID:   record.ID,
	})

	return record, nil
}

func (s *Service) ListRecords(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return s.List(ctx, filter)
}

func (s *Service) Summary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	return s.MonthlySummary(ctx, employeeID, month, year)
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionAttendanceEdited,
		EntityType: "attendance",
		EntityID:   id,
		Details:    map[string]any{"deleted": true},
	})
	return nil
}
