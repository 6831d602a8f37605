package activity

import (
	"context"
	"log/slog"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
)

// Recorder writes audit-trail entries. Recording is best effort: a
// failed insert is logged and swallowed so it never fails the operation
// being recorded.
type Recorder struct {
	repo   activity.ActivityRepository
	logger *slog.Logger
}

func NewRecorder(repo activity.ActivityRepository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, entry activity.Entry) {
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Warn("failed to record activity",
			slog.String("action", string(entry.Action)),
			slog.String("entity_id", entry.EntityID),
			slog.Any("error", err),
		)
	}
}

func (r *Recorder) List(ctx context.Context, filter activity.ActivityFilter) ([]activity.Entry, int64, error) {
	return r.repo.List(ctx, filter)
}
