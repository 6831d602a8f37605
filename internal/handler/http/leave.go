package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	leavesvc "github.com/peoplehq/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MyStats(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	EmployeeBalance(w http.ResponseWriter, r *http.Request)
	AllBalances(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	Rollover(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService *leavesvc.RequestService
	balanceService *leavesvc.BalanceService
}

func NewLeaveHandler(requestService *leavesvc.RequestService, balanceService *leavesvc.BalanceService) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService: requestService,
		balanceService: balanceService,
	}
}

func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.requestService.Submit(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Submit leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{
		Category: queryString(r, "category"),
		Status:   queryString(r, "status"),
		Year:     queryInt(r, "year"),
		Page:     queryIntDefault(r, "page", 1),
		Limit:    queryIntDefault(r, "limit", 20),
	}

	// Non-approvers only see their own requests.
	if middleware.CallerRole(r.Context()).CanApprove() {
		filter.EmployeeID = queryString(r, "employee_id")
	} else {
		id := middleware.UserID(r.Context())
		filter.EmployeeID = &id
	}

	requests, total, err := h.requestService.ListRequests(r.Context(), filter)
	if err != nil {
		slog.Error("List leave requests error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.requestService.GetByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !middleware.CallerRole(r.Context()).CanApprove() && request.EmployeeID != middleware.UserID(r.Context()) {
		response.NotFound(w, "Leave request not found")
		return
	}

	response.Success(w, request)
}

func (h *LeaveHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	history, err := h.requestService.History(r.Context(), middleware.UserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, history)
}

func (h *LeaveHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	stats, err := h.requestService.Stats(r.Context(), middleware.UserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *LeaveHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = pathParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Owners edit their own pending requests only.
	existing, err := h.requestService.GetByID(r.Context(), req.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if existing.EmployeeID != middleware.UserID(r.Context()) {
		response.NotFound(w, "Leave request not found")
		return
	}

	updated, err := h.requestService.Edit(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Edit leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", updated)
}

func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = pathParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.requestService.Approve(r.Context(), req.RequestID, middleware.UserID(r.Context()), req.Comments)
	if err != nil {
		slog.Error("Approve leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", approved)
}

func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = pathParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.requestService.Reject(r.Context(), req.RequestID, middleware.UserID(r.Context()), req.Comments)
	if err != nil {
		slog.Error("Reject leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}

func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	existing, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	callerID := middleware.UserID(r.Context())
	if existing.EmployeeID != callerID && !middleware.CallerRole(r.Context()).CanApprove() {
		response.NotFound(w, "Leave request not found")
		return
	}

	cancelled, err := h.requestService.Cancel(r.Context(), id, callerID)
	if err != nil {
		slog.Error("Cancel leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", cancelled)
}

func (h *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	ledger, err := h.balanceService.GetBalance(r.Context(), middleware.UserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ledger)
}

func (h *LeaveHandlerImpl) EmployeeBalance(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	ledger, err := h.balanceService.GetBalance(r.Context(), pathParam(r, "employeeID"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ledger)
}

func (h *LeaveHandlerImpl) AllBalances(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	ledgers, err := h.balanceService.AllBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ledgers)
}

func (h *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AdjustAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	ledger, err := h.balanceService.Adjust(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Adjust leave balance error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allocation adjusted", ledger)
}

func (h *LeaveHandlerImpl) Rollover(w http.ResponseWriter, r *http.Request) {
	var req leave.RolloverYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rolled, err := h.balanceService.Rollover(r.Context(), middleware.UserID(r.Context()), req.Year)
	if err != nil {
		slog.Error("Rollover leave balances error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year rolled over", map[string]any{"ledgers_created": rolled})
}
