package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/domain/notification"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/pdf"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
	notificationsvc "github.com/peoplehq/hrms-backend-go/internal/service/notification"
)

type Service struct {
	db *database.DB
	payroll.PayrollRepository
	leaveRepo leave.LeaveRequestRepository
	userRepo  user.UserRepository
	recorder  *activitysvc.Recorder
	notifier  *notificationsvc.Service
}

func NewService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	recorder *activitysvc.Recorder,
	notifier *notificationsvc.Service,
) *Service {
	return &Service{
		db:                db,
		PayrollRepository: payrollRepo,
		leaveRepo:         leaveRepo,
		userRepo:          userRepo,
		recorder:          recorder,
		notifier:          notifier,
	}
}

// daysInMonth returns the calendar day count of a month.
func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Generate creates the salary record for one employee-month. The unpaid
// leave deduction is derived from approved unpaid leave days falling
// inside the month; the second generation for the same month fails.
func (s *Service) Generate(ctx context.Context, actorID string, req payroll.GeneratePayrollRequest) (payroll.Payroll, error) {
	emp, err := s.userRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Payroll{}, err
	}

	baseSalary := decimal.NewFromFloat(req.BaseSalary)
	if req.BaseSalary == 0 {
		if emp.BaseSalary == nil || *emp.BaseSalary <= 0 {
			return payroll.Payroll{}, payroll.ErrNoBaseSalary
		}
		baseSalary = decimal.NewFromFloat(*emp.BaseSalary)
	}

	unpaidDays, err := s.leaveRepo.ApprovedDays(ctx, req.EmployeeID, leave.CategoryUnpaid, req.Month, req.Year)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to derive unpaid leave days: %w", err)
	}

	record := payroll.Payroll{
		EmployeeID:       req.EmployeeID,
		Month:            req.Month,
		Year:             req.Year,
		BaseSalary:       baseSalary,
		Allowances:       allowancesFromMap(req.Allowances),
		Deductions:       deductionsFromMap(req.Deductions),
		TotalWorkingDays: float64(daysInMonth(req.Month, req.Year)),
		UnpaidLeaveDays:  unpaidDays,
		Status:           payroll.StatusPending,
	}
	if req.Remarks != "" {
		record.Remarks = &req.Remarks
	}
	record.Compute()

	created, err := s.Create(ctx, record)
	if err != nil {
		return payroll.Payroll{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionPayrollGenerated,
		EntityType: "payroll",
		EntityID:   created.ID,
		Details: map[string]any{
			"month": req.Month,
			"year":  req.Year,
		},
	})
	s.notifier.Notify(ctx, created.EmployeeID, notification.KindPayrollReady,
		"Payroll generated",
		fmt.Sprintf("Your salary for %s %d has been generated.", time.Month(req.Month), req.Year),
		&created.ID)

	return created, nil
}

// UpdateComponents adjusts a modifiable record's components and
// recomputes the derived amounts. Only Pending and On Hold records
// accept changes.
func (s *Service) UpdateComponents(ctx context.Context, actorID string, req payroll.UpdatePayrollRequest) (payroll.Payroll, error) {
	record, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.Payroll{}, err
	}

	if !record.CanBeModified() {
		return payroll.Payroll{}, payroll.ErrPayrollFrozen
	}

	if req.BaseSalary != nil {
		record.BaseSalary = decimal.NewFromFloat(*req.BaseSalary)
	}
	if req.Allowances != nil {
		record.Allowances = allowancesFromMap(req.Allowances)
	}
	if req.Deductions != nil {
		record.Deductions = deductionsFromMap(req.Deductions)
	}
	if req.Status != nil {
		record.Status = payroll.Status(*req.Status)
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}
	record.Compute()

	if err := s.Update(ctx, record); err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionPayrollUpdated,
		EntityType: "payroll",
		EntityID:   record.ID,
	})

	return record, nil
}

// MarkPaid settles the record. ProcessedAt is stamped on the first
// transition only; marking twice fails rather than re-stamping.
func (s *Service) MarkPaid(ctx context.Context, actorID string, req payroll.MarkPaidRequest) (payroll.Payroll, error) {
	record, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.Payroll{}, err
	}

	if record.Status == payroll.StatusPaid {
		return payroll.Payroll{}, payroll.ErrAlreadyPaid
	}
	if !record.CanBeMarkedPaid() {
		return payroll.Payroll{}, payroll.ErrPayrollStateInvalid
	}

	if req.PaymentMethod != "" {
		record.PaymentMethod = &req.PaymentMethod
	}
	if req.BankAccount != "" {
		record.BankAccount = &req.BankAccount
	}

	record.MarkPaid(time.Now(), req.TransactionID)
	if err := s.Update(ctx, record); err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionPayrollPaid,
		EntityType: "payroll",
		EntityID:   record.ID,
	})
	s.notifier.Notify(ctx, record.EmployeeID, notification.KindPayrollPaid,
		"Salary paid",
		fmt.Sprintf("Your salary for %s %d has been paid.", time.Month(record.Month), record.Year),
		&record.ID)

	return record, nil
}

func (s *Service) ListRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	return s.List(ctx, filter)
}

// Remove deletes an unpaid record; paid records never go away.
func (s *Service) Remove(ctx context.Context, actorID, id string) error {
	if err := s.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionPayrollDeleted,
		EntityType: "payroll",
		EntityID:   id,
	})
	return nil
}

func (s *Service) Summary(ctx context.Context, employeeID string, year int) (payroll.YearlySummary, error) {
	return s.YearlySummary(ctx, employeeID, year)
}

// Payslip renders the salary slip PDF for one payroll record.
func (s *Service) Payslip(ctx context.Context, id string) ([]byte, payroll.Payroll, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, payroll.Payroll{}, err
	}

	emp, err := s.userRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return nil, payroll.Payroll{}, err
	}

	data := pdf.PayslipData{
		EmployeeName: emp.FullName(),
		EmployeeCode: emp.EmployeeCode,
		Month:        time.Month(record.Month),
		Year:         record.Year,
		BaseSalary:   record.BaseSalary,
		Allowances: map[string]decimal.Decimal{
			"HRA":       record.Allowances.HRA,
			"Transport": record.Allowances.Transport,
			"Medical":   record.Allowances.Medical,
			"Bonus":     record.Allowances.Bonus,
			"Others":    record.Allowances.Others,
		},
		Deductions: map[string]decimal.Decimal{
			"Tax":              record.Deductions.Tax,
			"Provident Fund":   record.Deductions.ProvidentFund,
			"Insurance":        record.Deductions.Insurance,
			"Professional Tax": record.Deductions.ProfessionalTax,
			"Loan":             record.Deductions.LoanDeduction,
			"Others":           record.Deductions.Others,
			"Unpaid Leave":     record.UnpaidDeduction,
		},
		GrossSalary: record.GrossSalary,
		NetSalary:   record.NetSalary,
		WorkingDays: int(record.TotalWorkingDays - record.UnpaidLeaveDays),
		TotalDays:   int(record.TotalWorkingDays),
		UnpaidDays:  decimal.NewFromFloat(record.UnpaidLeaveDays),
	}
	if emp.Department != nil {
		data.Department = *emp.Department
	}
	if emp.Designation != nil {
		data.Designation = *emp.Designation
	}

	slip, err := pdf.RenderPayslip(data)
	if err != nil {
		return nil, payroll.Payroll{}, err
	}
	return slip, record, nil
}

func allowancesFromMap(m map[string]float64) payroll.Allowances {
	return payroll.Allowances{
		HRA:       decimal.NewFromFloat(m["hra"]),
		Transport: decimal.NewFromFloat(m["transport"]),
		Medical:   decimal.NewFromFloat(m["medical"]),
		Bonus:     decimal.NewFromFloat(m["bonus"]),
		Others:    decimal.NewFromFloat(m["others"]),
	}
}

func deductionsFromMap(m map[string]float64) payroll.Deductions {
	return payroll.Deductions{
		Tax:             decimal.NewFromFloat(m["tax"]),
		ProvidentFund:   decimal.NewFromFloat(m["provident_fund"]),
		Insurance:       decimal.NewFromFloat(m["insurance"]),
		ProfessionalTax: decimal.NewFromFloat(m["professional_tax"]),
		LoanDeduction:   decimal.NewFromFloat(m["loan_deduction"]),
		Others:          decimal.NewFromFloat(m["others"]),
	}
}
