package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := "unit-test-secret"
	sessionID := uuid.New().String()

	token, err := SignSessionToken(secret, sessionID, 7, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, err := SignSessionToken("secret-a", uuid.New().String(), 1, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ParseSessionToken("secret-b", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := SignSessionToken("secret", uuid.New().String(), 1, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignSessionToken_EmptySecret(t *testing.T) {
	_, err := SignSessionToken("", uuid.New().String(), 1, time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
