package leave

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type CreateLeaveRequestRequest struct {
	Category    string       `json:"category"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Reason      string       `json:"reason"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of Paid, Sick, Unpaid, Casual, Maternity, Paternity",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && start.Before(today()) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be in the past",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(r.Reason) < MinReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least 10 characters",
		})
	}
	if len(r.Reason) > MaxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestRequest edits a pending request. Absent fields keep
// their current values; submission-time validation re-runs in the service.
type UpdateLeaveRequestRequest struct {
	ID          string        `json:"id"`
	Category    *string       `json:"category,omitempty"`
	StartDate   *string       `json:"start_date,omitempty"`
	EndDate     *string       `json:"end_date,omitempty"`
	Reason      *string       `json:"reason,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Category != nil && !Category(*r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of Paid, Sick, Unpaid, Casual, Maternity, Paternity",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.Reason != nil {
		if len(*r.Reason) < MinReasonLength {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Message: "reason must be at least 10 characters",
			})
		}
		if len(*r.Reason) > MaxReasonLength {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Message: "reason must not exceed 500 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequestRequest struct {
	RequestID string `json:"request_id"`
	Comments  string `json:"comments,omitempty"`
}

func (r *ApproveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"request_id"`
	Comments  string `json:"comments,omitempty"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustAllocationRequest struct {
	EmployeeID string  `json:"employee_id"`
	Year       int     `json:"year"`
	Category   string  `json:"category"`
	NewTotal   float64 `json:"new_total"`
}

func (r *AdjustAllocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2020 and 2100",
		})
	}

	if !Category(r.Category).Tracked() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be a tracked leave category",
		})
	}

	if r.NewTotal < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_total",
			Message: "new_total must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RolloverYearRequest struct {
	Year int `json:"year"`
}

func (r *RolloverYearRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2020 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter narrows list queries.
type LeaveRequestFilter struct {
	EmployeeID *string
	Category   *string
	Status     *string
	Year       *int
	Page       int
	Limit      int
}

// CategoryStat is one row of the per-category approved-days aggregation.
type CategoryStat struct {
	Category  Category `json:"category"`
	TotalDays float64  `json:"total_days"`
	Count     int      `json:"count"`
}
