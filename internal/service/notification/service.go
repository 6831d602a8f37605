package notification

import (
	"context"
	"log/slog"

	"github.com/peoplehq/hrms-backend-go/internal/domain/notification"
)

type Service struct {
	notification.NotificationRepository
	logger *slog.Logger
}

func NewService(repo notification.NotificationRepository, logger *slog.Logger) *Service {
	return &Service{NotificationRepository: repo, logger: logger}
}

// Notify delivers an in-app notification. Delivery is best effort; a
// failed insert is logged and swallowed.
func (s *Service) Notify(ctx context.Context, recipientID string, kind notification.Kind, title, message string, referenceID *string) {
	n := notification.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}
	if _, err := s.Create(ctx, n); err != nil {
		s.logger.Warn("failed to deliver notification",
			slog.String("recipient_id", recipientID),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
	}
}

func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]notification.Notification, int64, error) {
	return s.ListByRecipient(ctx, userID, unreadOnly, page, limit)
}
