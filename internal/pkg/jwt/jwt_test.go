//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "operador", identity.RoleOperator)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "operador", claims.Username)
	assert.Equal(t, string(identity.RoleOperator), claims.Role)
}

func TestValidateToken(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewService("secret-a", time.Hour).GenerateToken(uuid.New(), "u", identity.RoleAdmin)
		require.NoError(t, err)

		_, err = jwt.NewService("secret-b", time.Hour).ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := jwt.NewService("test-secret", -time.Minute)
		token, err := svc.GenerateToken(uuid.New(), "u", identity.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := jwt.NewService("test-secret", time.Hour).ValidateToken("not.a.token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
