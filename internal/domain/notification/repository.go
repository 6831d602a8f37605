package notification

import "context"

// NotificationRepository - interface for notifications table
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, limit int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id, recipientID string) error
}
