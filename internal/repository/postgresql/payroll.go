package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.base_salary,
	p.hra, p.transport_allowance, p.medical_allowance, p.bonus, p.other_allowances,
	p.tax, p.provident_fund, p.insurance, p.professional_tax, p.loan_deduction, p.other_deductions,
	p.total_working_days, p.unpaid_leave_days, p.unpaid_deduction,
	p.gross_salary, p.net_salary, p.status, p.processed_at, p.remarks,
	p.payment_method, p.transaction_id, p.bank_account,
	p.created_at, p.updated_at
`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary,
		&p.Allowances.HRA, &p.Allowances.Transport, &p.Allowances.Medical, &p.Allowances.Bonus, &p.Allowances.Others,
		&p.Deductions.Tax, &p.Deductions.ProvidentFund, &p.Deductions.Insurance, &p.Deductions.ProfessionalTax, &p.Deductions.LoanDeduction, &p.Deductions.Others,
		&p.TotalWorkingDays, &p.UnpaidLeaveDays, &p.UnpaidDeduction,
		&p.GrossSalary, &p.NetSalary, &p.Status, &p.ProcessedAt, &p.Remarks,
		&p.PaymentMethod, &p.TransactionID, &p.BankAccount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func payrollArgs(p payroll.Payroll) []any {
	return []any{
		p.BaseSalary,
		p.Allowances.HRA, p.Allowances.Transport, p.Allowances.Medical, p.Allowances.Bonus, p.Allowances.Others,
		p.Deductions.Tax, p.Deductions.ProvidentFund, p.Deductions.Insurance, p.Deductions.ProfessionalTax, p.Deductions.LoanDeduction, p.Deductions.Others,
		p.TotalWorkingDays, p.UnpaidLeaveDays, p.UnpaidDeduction,
		p.GrossSalary, p.NetSalary, p.Status, p.ProcessedAt, p.Remarks,
		p.PaymentMethod, p.TransactionID, p.BankAccount,
	}
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			id, employee_id, month, year, base_salary,
			hra, transport_allowance, medical_allowance, bonus, other_allowances,
			tax, provident_fund, insurance, professional_tax, loan_deduction, other_deductions,
			total_working_days, unpaid_leave_days, unpaid_deduction,
			gross_salary, net_salary, status, processed_at, remarks,
			payment_method, transaction_id, bank_account,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18,
			$19, $20, $21, $22, $23,
			$24, $25, $26,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	args := append([]any{record.EmployeeID, record.Month, record.Year}, payrollArgs(record)...)
	err := q.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Payroll{}, payroll.ErrPayrollExists
		}
		return payroll.Payroll{}, err
	}

	return record, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls p WHERE p.id = $1`
	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls p WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3`
	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argPos))
		args = append(args, *filter.Year)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payrolls p ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s,
			   u.first_name || ' ' || u.last_name AS employee_name,
			   u.employee_code
		FROM payrolls p
		INNER JOIN users u ON p.employee_id = u.id
		%s
		ORDER BY p.year DESC, p.month DESC, u.employee_code
		LIMIT $%d OFFSET $%d
	`, payrollColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary,
			&p.Allowances.HRA, &p.Allowances.Transport, &p.Allowances.Medical, &p.Allowances.Bonus, &p.Allowances.Others,
			&p.Deductions.Tax, &p.Deductions.ProvidentFund, &p.Deductions.Insurance, &p.Deductions.ProfessionalTax, &p.Deductions.LoanDeduction, &p.Deductions.Others,
			&p.TotalWorkingDays, &p.UnpaidLeaveDays, &p.UnpaidDeduction,
			&p.GrossSalary, &p.NetSalary, &p.Status, &p.ProcessedAt, &p.Remarks,
			&p.PaymentMethod, &p.TransactionID, &p.BankAccount,
			&p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, p)
	}

	return records, total, rows.Err()
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, record payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET base_salary = $2,
			hra = $3, transport_allowance = $4, medical_allowance = $5, bonus = $6, other_allowances = $7,
			tax = $8, provident_fund = $9, insurance = $10, professional_tax = $11, loan_deduction = $12, other_deductions = $13,
			total_working_days = $14, unpaid_leave_days = $15, unpaid_deduction = $16,
			gross_salary = $17, net_salary = $18, status = $19, processed_at = $20, remarks = $21,
			payment_method = $22, transaction_id = $23, bank_account = $24,
			updated_at = NOW()
		WHERE id = $1
	`
	args := append([]any{record.ID}, payrollArgs(record)...)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payrolls WHERE id = $1 AND status <> 'Paid'`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) YearlySummary(ctx context.Context, employeeID string, year int) (payroll.YearlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Paid'),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(net_salary), 0),
			COALESCE(SUM(gross_salary - net_salary), 0),
			COALESCE(SUM(unpaid_leave_days), 0)
		FROM payrolls
		WHERE employee_id = $1 AND year = $2
	`

	summary := payroll.YearlySummary{
		EmployeeID: employeeID,
		Year:       year,
	}
	var gross, net, deductions decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&summary.MonthsPaid,
		&gross,
		&net,
		&deductions,
		&summary.UnpaidLeaveDays,
	)
	if err != nil {
		return payroll.YearlySummary{}, err
	}

	summary.TotalGross = gross.StringFixed(2)
	summary.TotalNet = net.StringFixed(2)
	summary.TotalDeductions = deductions.StringFixed(2)
	return summary, nil
}
