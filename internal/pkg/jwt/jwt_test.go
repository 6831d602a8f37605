package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
)

func newTestService() Service {
	return NewJWTService("test-secret", "15m", "168h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "jane@example.com", "EMP001", user.RoleHR)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "EMP001", claims["employee_code"])
	assert.Equal(t, "HR", claims["role"])
	assert.Equal(t, "access", claims["type"])
	assert.Greater(t, expiresAt, int64(0))
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "user-1", claims["user_id"])
}

func TestGenerateTokenBadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration", "168h")

	_, _, err := svc.GenerateAccessToken("user-1", "jane@example.com", "EMP001", user.RoleEmployee)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("abc", 1767225600)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "abc", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
