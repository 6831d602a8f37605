package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const ledgerColumns = `
	id, employee_id, year,
	paid_total, paid_used, paid_remaining,
	sick_total, sick_used, sick_remaining,
	casual_total, casual_used, casual_remaining,
	maternity_total, maternity_used, maternity_remaining,
	paternity_total, paternity_used, paternity_remaining,
	carry_forward, total_leave_taken, created_at, updated_at
`

func scanLedger(row pgx.Row) (leave.Ledger, error) {
	var l leave.Ledger
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Year,
		&l.PaidLeave.Total, &l.PaidLeave.Used, &l.PaidLeave.Remaining,
		&l.SickLeave.Total, &l.SickLeave.Used, &l.SickLeave.Remaining,
		&l.CasualLeave.Total, &l.CasualLeave.Used, &l.CasualLeave.Remaining,
		&l.MaternityLeave.Total, &l.MaternityLeave.Used, &l.MaternityLeave.Remaining,
		&l.PaternityLeave.Total, &l.PaternityLeave.Used, &l.PaternityLeave.Remaining,
		&l.CarryForward, &l.TotalLeaveTaken, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func ledgerArgs(l leave.Ledger) []any {
	return []any{
		l.PaidLeave.Total, l.PaidLeave.Used, l.PaidLeave.Remaining,
		l.SickLeave.Total, l.SickLeave.Used, l.SickLeave.Remaining,
		l.CasualLeave.Total, l.CasualLeave.Used, l.CasualLeave.Remaining,
		l.MaternityLeave.Total, l.MaternityLeave.Used, l.MaternityLeave.Remaining,
		l.PaternityLeave.Total, l.PaternityLeave.Used, l.PaternityLeave.Remaining,
		l.CarryForward, l.TotalLeaveTaken,
	}
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, ledger leave.Ledger) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, year,
			paid_total, paid_used, paid_remaining,
			sick_total, sick_used, sick_remaining,
			casual_total, casual_used, casual_remaining,
			maternity_total, maternity_used, maternity_remaining,
			paternity_total, paternity_used, paternity_remaining,
			carry_forward, total_leave_taken, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2,
			$3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	args := append([]any{ledger.EmployeeID, ledger.Year}, ledgerArgs(ledger)...)
	err := q.QueryRow(ctx, query, args...).Scan(&ledger.ID, &ledger.CreatedAt, &ledger.UpdatedAt)
	if err != nil {
		return leave.Ledger{}, err
	}
	return ledger, nil
}

// GetOrCreate lazily inserts the default allocations. The ON CONFLICT
// DO NOTHING plus re-select makes concurrent first touches of the same
// (employee, year) converge on one row.
func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, employeeID string, year int) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	fresh := leave.NewLedger(employeeID, year)
	insert := `
		INSERT INTO leave_balances (
			id, employee_id, year,
			paid_total, paid_used, paid_remaining,
			sick_total, sick_used, sick_remaining,
			casual_total, casual_used, casual_remaining,
			maternity_total, maternity_used, maternity_remaining,
			paternity_total, paternity_used, paternity_remaining,
			carry_forward, total_leave_taken, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2,
			$3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19,
			NOW(), NOW()
		) ON CONFLICT (employee_id, year) DO NOTHING
	`
	args := append([]any{employeeID, year}, ledgerArgs(fresh)...)
	if _, err := q.Exec(ctx, insert, args...); err != nil {
		return leave.Ledger{}, err
	}

	query := `SELECT ` + ledgerColumns + ` FROM leave_balances WHERE employee_id = $1 AND year = $2`
	l, err := scanLedger(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Ledger{}, leave.ErrLedgerNotFound
		}
		return leave.Ledger{}, err
	}
	return l, nil
}

func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, year int) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + ` FROM leave_balances WHERE employee_id = $1 AND year = $2 FOR UPDATE`
	l, err := scanLedger(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Ledger{}, leave.ErrLedgerNotFound
		}
		return leave.Ledger{}, err
	}
	return l, nil
}

func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, ledger leave.Ledger) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET paid_total = $2, paid_used = $3, paid_remaining = $4,
			sick_total = $5, sick_used = $6, sick_remaining = $7,
			casual_total = $8, casual_used = $9, casual_remaining = $10,
			maternity_total = $11, maternity_used = $12, maternity_remaining = $13,
			paternity_total = $14, paternity_used = $15, paternity_remaining = $16,
			carry_forward = $17, total_leave_taken = $18,
			updated_at = NOW()
		WHERE id = $1
	`
	args := append([]any{ledger.ID}, ledgerArgs(ledger)...)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLedgerNotFound
	}
	return nil
}

func (r *leaveBalanceRepositoryImpl) ListByYear(ctx context.Context, year int) ([]leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + ` FROM leave_balances WHERE year = $1 ORDER BY employee_id`
	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []leave.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, rows.Err()
}
