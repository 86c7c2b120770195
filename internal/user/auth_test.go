package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hash)

	assert.True(t, CheckPasswordHash("hunter2!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	canteenID := "cant-1"
	token, err := GenerateJWT("user-1", string(RoleManager), &canteenID)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	require.NotNil(t, claims.CanteenID)
	assert.Equal(t, "cant-1", *claims.CanteenID)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateJWT("user-1", string(RoleStudent), nil)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateJWT("user-1", string(RoleStudent), nil)
	assert.Error(t, err)
}
