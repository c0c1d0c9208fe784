package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarters/internal/shared/authorization"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	token, err := svc.Generate(42, authorization.RoleTenant)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), actor.ID)
	assert.Equal(t, authorization.RoleTenant, actor.Role)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 60).Generate(42, authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 60).Validate(token)
	assert.Error(t, err)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -1)

	token, err := svc.Generate(42, authorization.RoleTenant)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
