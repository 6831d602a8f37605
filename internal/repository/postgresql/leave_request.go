package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/leave"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.category, lr.start_date, lr.end_date,
	lr.number_of_days, lr.reason, lr.status,
	lr.approved_by, lr.approved_at, lr.approver_comments,
	lr.attachments, lr.is_deleted, lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.Category,
		&lr.StartDate,
		&lr.EndDate,
		&lr.NumberOfDays,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.ApproverComments,
		&lr.Attachments,
		&lr.IsDeleted,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, category, start_date, end_date,
			number_of_days, reason, status, attachments,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Category, request.StartDate, request.EndDate,
		request.NumberOfDays, request.Reason, request.Status, request.Attachments,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1 AND lr.is_deleted = FALSE
	`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"lr.is_deleted = FALSE"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("lr.category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM lr.start_date) = $%d", argPos))
		args = append(args, *filter.Year)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests lr ` + where
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
			   u.first_name || ' ' || u.last_name AS employee_name
		FROM leave_requests lr
		INNER JOIN users u ON lr.employee_id = u.id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.Category,
			&lr.StartDate,
			&lr.EndDate,
			&lr.NumberOfDays,
			&lr.Reason,
			&lr.Status,
			&lr.ApprovedBy,
			&lr.ApprovedAt,
			&lr.ApproverComments,
			&lr.Attachments,
			&lr.IsDeleted,
			&lr.CreatedAt,
			&lr.UpdatedAt,
			&lr.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}

func (r *leaveRequestRepositoryImpl) GetHistory(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		  AND EXTRACT(YEAR FROM lr.start_date) = $2
		  AND lr.is_deleted = FALSE
		ORDER BY lr.start_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET category = $2, start_date = $3, end_date = $4, number_of_days = $5,
			reason = $6, status = $7, approved_by = $8, approved_at = $9,
			approver_comments = $10, attachments = $11, is_deleted = $12,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		request.ID, request.Category, request.StartDate, request.EndDate, request.NumberOfDays,
		request.Reason, request.Status, request.ApprovedBy, request.ApprovedAt,
		request.ApproverComments, request.Attachments, request.IsDeleted,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive interval intersection; touching endpoints conflict.
	query := `
		SELECT id
		FROM leave_requests
		WHERE employee_id = $1
		  AND status IN ('Pending', 'Approved')
		  AND is_deleted = FALSE
		  AND start_date <= $3
		  AND end_date >= $2
		  AND ($4 = '' OR id::text <> $4)
		LIMIT 1
	`
	var id string
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate, excludeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *leaveRequestRepositoryImpl) StatsByCategory(ctx context.Context, employeeID string, year int) ([]leave.CategoryStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT category, COALESCE(SUM(number_of_days), 0), COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM start_date) = $2
		  AND status = 'Approved'
		  AND is_deleted = FALSE
		GROUP BY category
		ORDER BY category
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []leave.CategoryStat
	for rows.Next() {
		var s leave.CategoryStat
		if err := rows.Scan(&s.Category, &s.TotalDays, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ApprovedDays(ctx context.Context, employeeID string, category leave.Category, month, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	// Counts only the days of each approved request that fall inside the
	// month, so requests spanning a month boundary contribute partially.
	query := `
		SELECT COALESCE(SUM(
			(LEAST(end_date, (make_date($3, $4, 1) + INTERVAL '1 month - 1 day')::date)::date
			 - GREATEST(start_date, make_date($3, $4, 1))::date) + 1
		), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND category = $2
		  AND status = 'Approved'
		  AND is_deleted = FALSE
		  AND start_date <= (make_date($3, $4, 1) + INTERVAL '1 month - 1 day')::date
		  AND end_date >= make_date($3, $4, 1)
	`
	var days float64
	err := q.QueryRow(ctx, query, employeeID, category, year, month).Scan(&days)
	if err != nil {
		return 0, err
	}
	return days, nil
}
