package activity

import "context"

// ActivityFilter narrows list queries.
type ActivityFilter struct {
	ActorID    *string
	Action     *string
	EntityType *string
	Page       int
	Limit      int
}

// ActivityRepository - interface for activity_logs table
type ActivityRepository interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter ActivityFilter) ([]Entry, int64, error)
}
