package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	payrollsvc "github.com/peoplehq/hrms-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollsvc.Service
}

func NewPayrollHandler(payrollService *payrollsvc.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.Generate(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Generate payroll error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", record)
}

func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		Month:  queryInt(r, "month"),
		Year:   queryInt(r, "year"),
		Status: queryString(r, "status"),
		Page:   queryIntDefault(r, "page", 1),
		Limit:  queryIntDefault(r, "limit", 20),
	}

	if middleware.CallerRole(r.Context()).CanApprove() {
		filter.EmployeeID = queryString(r, "employee_id")
	} else {
		id := middleware.UserID(r.Context())
		filter.EmployeeID = &id
	}

	records, total, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("List payroll error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.payrollService.GetByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !middleware.CallerRole(r.Context()).CanApprove() && record.EmployeeID != middleware.UserID(r.Context()) {
		response.NotFound(w, "Payroll record not found")
		return
	}

	response.Success(w, record)
}

func (h *PayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = pathParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.UpdateComponents(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("Update payroll error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated", record)
}

func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = pathParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.MarkPaid(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("MarkPaid error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", record)
}

// Delete removes an unpaid record so the period can be regenerated.
func (h *PayrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.Remove(r.Context(), middleware.UserID(r.Context()), pathParam(r, "id")); err != nil {
		slog.Error("Delete payroll error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

func (h *PayrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	// Ownership check before rendering.
	record, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !middleware.CallerRole(r.Context()).CanApprove() && record.EmployeeID != middleware.UserID(r.Context()) {
		response.NotFound(w, "Payroll record not found")
		return
	}

	slip, record, err := h.payrollService.Payslip(r.Context(), id)
	if err != nil {
		slog.Error("Payslip render error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payslip-%d-%02d.pdf"`, record.Year, record.Month))
	_, _ = w.Write(slip)
}

func (h *PayrollHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	summary, err := h.payrollService.Summary(r.Context(), middleware.UserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *PayrollHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", time.Now().Year())
	summary, err := h.payrollService.Summary(r.Context(), pathParam(r, "employeeID"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
