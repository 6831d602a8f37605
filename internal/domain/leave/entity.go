package leave

import (
	"time"
)

// Category is the closed set of leave categories. Unpaid leave is the
// only category with no ledger bucket.
type Category string

const (
	CategoryPaid      Category = "Paid"
	CategorySick      Category = "Sick"
	CategoryUnpaid    Category = "Unpaid"
	CategoryCasual    Category = "Casual"
	CategoryMaternity Category = "Maternity"
	CategoryPaternity Category = "Paternity"
)

// AllCategories returns every valid leave category.
func AllCategories() []Category {
	return []Category{
		CategoryPaid,
		CategorySick,
		CategoryUnpaid,
		CategoryCasual,
		CategoryMaternity,
		CategoryPaternity,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPaid, CategorySick, CategoryUnpaid, CategoryCasual, CategoryMaternity, CategoryPaternity:
		return true
	}
	return false
}

// Tracked reports whether the category consumes a ledger bucket.
func (c Category) Tracked() bool {
	return c.IsValid() && c != CategoryUnpaid
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
// Approved is not terminal: it may still move to Cancelled while the
// start date is in the future.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// Attachment is a stored file reference on a leave request.
type Attachment struct {
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

const (
	MinReasonLength = 10
	MaxReasonLength = 500
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Category   Category

	StartDate time.Time
	EndDate   time.Time

	NumberOfDays float64

	Reason           string
	Status           Status
	ApprovedBy       *string
	ApprovedAt       *time.Time
	ApproverComments *string
	Attachments      []Attachment

	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields (for responses)
	EmployeeName *string
}

// NumberOfDays derives the day count of an inclusive date range,
// floored at half a day.
func NumberOfDays(startDate, endDate time.Time) float64 {
	days := endDate.Sub(startDate).Hours()/24 + 1
	if days < 0.5 {
		return 0.5
	}
	return days
}

// Overlaps reports whether two inclusive date ranges intersect.
// Touching endpoints count as overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// CanBeCancelled holds while the request is Pending, or Approved with
// the start date still in the future.
func (r LeaveRequest) CanBeCancelled(now time.Time) bool {
	return r.Status == StatusPending ||
		(r.Status == StatusApproved && r.StartDate.After(now))
}

// CanBeEdited holds only while the request is Pending.
func (r LeaveRequest) CanBeEdited() bool {
	return r.Status == StatusPending
}
