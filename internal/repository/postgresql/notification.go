package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/notification"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (
			id, recipient_id, kind, title, message, reference_id,
			is_read, created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5,
			FALSE, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		n.RecipientID, n.Kind, n.Title, n.Message, n.ReferenceID,
	).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, limit int) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications `+where, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT id, recipient_id, kind, title, message, reference_id, is_read, created_at, read_at
		FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, recipientID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Title, &n.Message, &n.ReferenceID, &n.IsRead, &n.CreatedAt, &n.ReadAt)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2 AND is_read = FALSE
	`
	tag, err := q.Exec(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		// Distinguish missing from already-read.
		var exists bool
		checkErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)`, id, recipientID).Scan(&exists)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return notification.ErrNotificationNotFound
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	return err
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, id, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
