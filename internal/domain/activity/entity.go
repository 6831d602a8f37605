package activity

import "time"

type Action string

const (
	ActionLeaveSubmitted   Action = "leave.submitted"
	ActionLeaveApproved    Action = "leave.approved"
	ActionLeaveRejected    Action = "leave.rejected"
	ActionLeaveCancelled   Action = "leave.cancelled"
	ActionLeaveEdited      Action = "leave.edited"
	ActionBalanceAdjusted  Action = "balance.adjusted"
	ActionYearRolledOver   Action = "balance.rollover"
	ActionCheckIn          Action = "attendance.check_in"
	ActionCheckOut         Action = "attendance.check_out"
	ActionAttendanceEdited Action = "attendance.edited"
	ActionPayrollGenerated Action = "payroll.generated"
	ActionPayrollUpdated   Action = "payroll.updated"
	ActionPayrollPaid      Action = "payroll.paid"
	ActionPayrollDeleted   Action = "payroll.deleted"
	ActionUserRegistered   Action = "user.registered"
	ActionUserUpdated      Action = "user.updated"
	ActionDocumentUploaded Action = "document.uploaded"
	ActionDocumentDeleted  Action = "document.deleted"
)

// Entry is one audit-trail row. Entries are best effort: failures to
// record them never fail the operation they describe.
type Entry struct {
	ID         string
	ActorID    string
	Action     Action
	EntityType string
	EntityID   string
	Details    map[string]any
	IPAddress  *string
	CreatedAt  time.Time
}
