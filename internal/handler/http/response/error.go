package response

import (
	"errors"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplehq/hrms-backend-go/internal/domain/document"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/domain/notification"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLedgerNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidState):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request can no longer be cancelled")
	case errors.Is(err, leave.ErrNotEditable):
		Conflict(w, "Only pending leave requests can be edited")
	case errors.Is(err, leave.ErrCategoryNotTracked):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for today")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, "Check-out time must be after check-in time", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll already generated for this month")
	case errors.Is(err, payroll.ErrPayrollFrozen):
		Conflict(w, "Payroll record can no longer be modified")
	case errors.Is(err, payroll.ErrPayrollStateInvalid):
		Conflict(w, "Payroll record is not in a payable state")
	case errors.Is(err, payroll.ErrAlreadyPaid):
		Conflict(w, "Payroll is already marked as paid")
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)

	// Document domain errors
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrFileTooLarge):
		BadRequest(w, "File exceeds the maximum allowed size", nil)
	case errors.Is(err, document.ErrInvalidFileType):
		BadRequest(w, "File type is not allowed", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
