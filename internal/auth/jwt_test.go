package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRequiresSecret(t *testing.T) {
	assert.Error(t, Init("", time.Hour))
	assert.NoError(t, Init("test-secret", time.Hour))
}

func TestGenerateAndVerify(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	token, err := GenerateJWT("user-1", "user@example.com", "organizer")
	require.NoError(t, err)

	parsed, err := VerifyJWT(token)
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "organizer", claims["role"])
}

func TestVerifyRejectsExpired(t *testing.T) {
	require.NoError(t, Init("test-secret", -time.Minute))

	token, err := GenerateJWT("user-1", "user@example.com", "attendee")
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyRejectsTampered(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	token, err := GenerateJWT("user-1", "user@example.com", "attendee")
	require.NoError(t, err)

	_, err = VerifyJWT(token + "x")
	assert.Error(t, err)

	_, err = VerifyJWT("not-a-token")
	assert.Error(t, err)
}
