package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, active bool) error
}
