package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, entry activity.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_logs (
			id, actor_id, action, entity_type, entity_id, details, ip_address, created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW()
		)
	`
	_, err := q.Exec(ctx, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Details, entry.IPAddress,
	)
	return err
}

func (r *activityRepositoryImpl) List(ctx context.Context, filter activity.ActivityFilter) ([]activity.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.ActorID != nil {
		conditions = append(conditions, fmt.Sprintf("actor_id = $%d", argPos))
		args = append(args, *filter.ActorID)
		argPos++
	}
	if filter.Action != nil {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argPos))
		args = append(args, *filter.Action)
		argPos++
	}
	if filter.EntityType != nil {
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", argPos))
		args = append(args, *filter.EntityType)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT id, actor_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM activity_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}
