package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	attendancesvc "github.com/peoplehq/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Warn("CheckIn error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", record)
}

func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Warn("CheckOut error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		Status:   queryString(r, "status"),
		DateFrom: queryString(r, "date_from"),
		DateTo:   queryString(r, "date_to"),
		Month:    queryInt(r, "month"),
		Year:     queryInt(r, "year"),
		Page:     queryIntDefault(r, "page", 1),
		Limit:    queryIntDefault(r, "limit", 20),
	}

	if middleware.CallerRole(r.Context()).CanApprove() {
		filter.EmployeeID = queryString(r, "employee_id")
	} else {
		id := middleware.UserID(r.Context())
		filter.EmployeeID = &id
	}

	records, total, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *AttendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := queryIntDefault(r, "month", int(now.Month()))
	year := queryIntDefault(r, "year", now.Year())

	summary, err := h.attendanceService.Summary(r.Context(), middleware.UserID(r.Context()), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *AttendanceHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := queryIntDefault(r, "month", int(now.Month()))
	year := queryIntDefault(r, "year", now.Year())

	summary, err := h.attendanceService.Summary(r.Context(), pathParam(r, "employeeID"), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *AttendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Upsert(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Upsert attendance error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record saved", record)
}

func (h *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Delete(r.Context(), middleware.UserID(r.Context()), pathParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}
