package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
	a.working_hours, a.status, a.remarks,
	a.check_in_location, a.check_out_location,
	a.modified_by, a.is_deleted, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.WorkingHours,
		&a.Status,
		&a.Remarks,
		&a.CheckInLocation,
		&a.CheckOutLocation,
		&a.ModifiedBy,
		&a.IsDeleted,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in_time, check_out_time,
			working_hours, status, remarks,
			check_in_location, check_out_location, modified_by,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.CheckInTime, record.CheckOutTime,
		record.WorkingHours, record.Status, record.Remarks,
		record.CheckInLocation, record.CheckOutLocation, record.ModifiedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, err
	}

	return record, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1 AND a.is_deleted = FALSE`
	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2 AND a.is_deleted = FALSE
	`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.is_deleted = FALSE"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM a.date) = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM a.date) = $%d", argPos))
		args = append(args, *filter.Year)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a ` + where
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
		FROM attendances a
		INNER JOIN users u ON a.employee_id = u.id
		%s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.Date,
			&a.CheckInTime,
			&a.CheckOutTime,
			&a.WorkingHours,
			&a.Status,
			&a.Remarks,
			&a.CheckInLocation,
			&a.CheckOutLocation,
			&a.ModifiedBy,
			&a.IsDeleted,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $2, check_out_time = $3, working_hours = $4,
			status = $5, remarks = $6,
			check_in_location = $7, check_out_location = $8,
			modified_by = $9, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`
	tag, err := q.Exec(ctx, query,
		record.ID, record.CheckInTime, record.CheckOutTime, record.WorkingHours,
		record.Status, record.Remarks,
		record.CheckInLocation, record.CheckOutLocation,
		record.ModifiedBy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE attendances SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*) FILTER (WHERE status = 'Half-day'),
			COUNT(*) FILTER (WHERE status = 'Leave'),
			COALESCE(SUM(working_hours), 0)
		FROM attendances
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
		  AND is_deleted = FALSE
	`

	summary := attendance.MonthlySummary{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	}
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&summary.PresentDays,
		&summary.AbsentDays,
		&summary.HalfDays,
		&summary.LeaveDays,
		&summary.TotalHours,
	)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	if worked := summary.PresentDays + summary.HalfDays; worked > 0 {
		summary.AverageHours = summary.TotalHours / float64(worked)
	}
	return summary, nil
}
