package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", false)
	dept := "dep-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "kim@example.com", user.RoleAdmin, &dept)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "kim@example.com", claims["email"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, "dep-1", claims["department_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever", false)
	_, _, err := svc.GenerateAccessToken("user-1", "kim@example.com", user.RoleMember, nil)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", false)
	token, _, err := svc.GenerateAccessToken("user-1", "kim@example.com", user.RoleMember, nil)
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
	assert.False(t, svc.IsTokenRevoked("other"))
}

func TestCookies(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", true)

	c := svc.AccessTokenCookie("abc", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, AccessTokenCookie, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	cleared := svc.ClearAccessTokenCookie()
	assert.Equal(t, AccessTokenCookie, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}
