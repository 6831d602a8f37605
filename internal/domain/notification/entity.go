package notification

import "time"

type Kind string

const (
	KindLeaveSubmitted Kind = "leave_submitted"
	KindLeaveApproved  Kind = "leave_approved"
	KindLeaveRejected  Kind = "leave_rejected"
	KindLeaveCancelled Kind = "leave_cancelled"
	KindPayrollReady   Kind = "payroll_ready"
	KindPayrollPaid    Kind = "payroll_paid"
	KindGeneral        Kind = "general"
)

// Notification is an in-app message delivered to one user.
type Notification struct {
	ID          string
	RecipientID string
	Kind        Kind
	Title       string
	Message     string
	ReferenceID *string
	IsRead      bool
	CreatedAt   time.Time
	ReadAt      *time.Time
}
