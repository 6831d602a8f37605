package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/domain/notification"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
	notificationsvc "github.com/peoplehq/hrms-backend-go/internal/service/notification"
)

type RequestService struct {
	db *database.DB
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	recorder *activitysvc.Recorder
	notifier *notificationsvc.Service
}

func NewRequestService(
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	recorder *activitysvc.Recorder,
	notifier *notificationsvc.Service,
) *RequestService {
	return &RequestService{
		db:                     db,
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
		recorder:               recorder,
		notifier:               notifier,
	}
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Submit validates dates and rejects overlapping siblings. No balance
// is checked or consumed here; an insufficient ledger surfaces at
// approval. The employee's ledger row is locked before the overlap
// check so two overlapping submissions serialize and the second sees
// the first's insert.
func (s *RequestService) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	category := leave.Category(req.Category)
	days := leave.NumberOfDays(startDate, endDate)

	request := leave.LeaveRequest{
		EmployeeID:   employeeID,
		Category:     category,
		StartDate:    startDate,
		EndDate:      endDate,
		NumberOfDays: days,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
		Attachments:  req.Attachments,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.LeaveBalanceRepository.GetOrCreate(txCtx, employeeID, startDate.Year()); err != nil {
			return fmt.Errorf("failed to ensure leave balance: %w", err)
		}
		if _, err := s.GetForUpdate(txCtx, employeeID, startDate.Year()); err != nil {
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}

		conflictID, err := s.FindOverlapping(txCtx, employeeID, startDate, endDate, "")
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if conflictID != "" {
			return &leave.OverlapError{ConflictingID: conflictID}
		}

		created, err := s.LeaveRequestRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		request = created
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    employeeID,
		Action:     activity.ActionLeaveSubmitted,
		EntityType: "leave_request",
		EntityID:   request.ID,
		Details: map[string]any{
			"category": string(category),
			"days":     days,
		},
	})

	return request, nil
}

// Approve moves a pending request to Approved and deducts the ledger in
// the same transaction. The ledger row is locked first, so concurrent
// approvals for one employee serialize and the second sees the reduced
// balance.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID string, comments string) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		request, err = s.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.Status != leave.StatusPending {
			return &leave.InvalidStateError{Current: request.Status, Expected: leave.StatusPending}
		}

		if request.Category.Tracked() {
			if _, err := s.LeaveBalanceRepository.GetOrCreate(txCtx, request.EmployeeID, request.StartDate.Year()); err != nil {
				return fmt.Errorf("failed to ensure leave balance: %w", err)
			}
			ledger, err := s.GetForUpdate(txCtx, request.EmployeeID, request.StartDate.Year())
			if err != nil {
				return fmt.Errorf("failed to lock leave balance: %w", err)
			}
			if err := ledger.Deduct(request.Category, request.NumberOfDays); err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.Update(txCtx, ledger); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		now := time.Now()
		request.Status = leave.StatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now
		if comments != "" {
			request.ApproverComments = &comments
		}

		if err := s.LeaveRequestRepository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    approverID,
		Action:     activity.ActionLeaveApproved,
		EntityType: "leave_request",
		EntityID:   request.ID,
	})
	s.notifier.Notify(ctx, request.EmployeeID, notification.KindLeaveApproved,
		"Leave request approved",
		fmt.Sprintf("Your %s leave from %s to %s was approved.",
			request.Category,
			request.StartDate.Format("2006-01-02"),
			request.EndDate.Format("2006-01-02")),
		&request.ID)

	return request, nil
}

// Reject moves a pending request to Rejected. The ledger is untouched:
// nothing was deducted at submission.
func (s *RequestService) Reject(ctx context.Context, requestID, approverID string, comments string) (leave.LeaveRequest, error) {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, &leave.InvalidStateError{Current: request.Status, Expected: leave.StatusPending}
	}

	now := time.Now()
	request.Status = leave.StatusRejected
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	if comments != "" {
		request.ApproverComments = &comments
	}

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    approverID,
		Action:     activity.ActionLeaveRejected,
		EntityType: "leave_request",
		EntityID:   request.ID,
	})
	s.notifier.Notify(ctx, request.EmployeeID, notification.KindLeaveRejected,
		"Leave request rejected",
		fmt.Sprintf("Your %s leave request was rejected.", request.Category),
		&request.ID)

	return request, nil
}

// Cancel is allowed while the request is Pending, or Approved with a
// future start date. Cancelling an approved request restores the
// deducted days in the same transaction.
func (s *RequestService) Cancel(ctx context.Context, requestID, actorID string) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		request, err = s.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if !request.CanBeCancelled(time.Now()) {
			return leave.ErrNotCancellable
		}

		wasApproved := request.Status == leave.StatusApproved
		if wasApproved && request.Category.Tracked() {
			ledger, err := s.GetForUpdate(txCtx, request.EmployeeID, request.StartDate.Year())
			if err != nil {
				return fmt.Errorf("failed to lock leave balance: %w", err)
			}
			if err := ledger.Restore(request.Category, request.NumberOfDays); err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.Update(txCtx, ledger); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		request.Status = leave.StatusCancelled
		if err := s.LeaveRequestRepository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionLeaveCancelled,
		EntityType: "leave_request",
		EntityID:   request.ID,
	})

	return request, nil
}

// Edit rewrites a pending request in place. The overlap check excludes
// the request itself and, like Submit, runs under the employee's
// ledger row lock.
func (s *RequestService) Edit(ctx context.Context, actorID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		request, err = s.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if !request.CanBeEdited() {
			return leave.ErrNotEditable
		}

		if req.Category != nil {
			request.Category = leave.Category(*req.Category)
		}
		if req.StartDate != nil {
			d, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				return fmt.Errorf("failed to parse start date: %w", err)
			}
			request.StartDate = d
		}
		if req.EndDate != nil {
			d, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				return fmt.Errorf("failed to parse end date: %w", err)
			}
			request.EndDate = d
		}
		if req.Reason != nil {
			request.Reason = *req.Reason
		}
		if req.Attachments != nil {
			request.Attachments = *req.Attachments
		}

		// Submission-time validations re-run against the merged values.
		var verrs validator.ValidationErrors
		if request.EndDate.Before(request.StartDate) {
			verrs = append(verrs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
		if req.StartDate != nil && request.StartDate.Before(startOfToday()) {
			verrs = append(verrs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must not be in the past",
			})
		}
		if len(verrs) > 0 {
			return verrs
		}
		request.NumberOfDays = leave.NumberOfDays(request.StartDate, request.EndDate)

		if _, err := s.LeaveBalanceRepository.GetOrCreate(txCtx, request.EmployeeID, request.StartDate.Year()); err != nil {
			return fmt.Errorf("failed to ensure leave balance: %w", err)
		}
		if _, err := s.GetForUpdate(txCtx, request.EmployeeID, request.StartDate.Year()); err != nil {
			return fmt.Errorf("failed to lock leave balance: %w", err)
		}

		conflictID, err := s.FindOverlapping(txCtx, request.EmployeeID, request.StartDate, request.EndDate, request.ID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if conflictID != "" {
			return &leave.OverlapError{ConflictingID: conflictID}
		}

		if err := s.LeaveRequestRepository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionLeaveEdited,
		EntityType: "leave_request",
		EntityID:   request.ID,
	})

	return request, nil
}

func (s *RequestService) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return s.List(ctx, filter)
}

func (s *RequestService) History(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	return s.GetHistory(ctx, employeeID, year)
}

func (s *RequestService) Stats(ctx context.Context, employeeID string, year int) ([]leave.CategoryStat, error) {
	return s.StatsByCategory(ctx, employeeID, year)
}
