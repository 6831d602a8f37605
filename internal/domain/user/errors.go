package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmailExists          = errors.New("email already registered")
	ErrUserInactive         = errors.New("user account is deactivated")
	ErrHRAccessRequired     = errors.New("HR or Admin access required")
	ErrAdminAccessRequired  = errors.New("Admin access required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
)
