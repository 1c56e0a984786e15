package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	assert.Error(t, err)
}

func TestToken_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret-0123456789")
	require.NoError(t, err)

	token, err := svc.Generate("user-42")
	require.NoError(t, err)

	uid, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", uid)
}

func TestToken_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret-0123456789")
	require.NoError(t, err)

	token, err := svc.GenerateWithDuration("user-42", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_WrongSecret(t *testing.T) {
	a, err := NewTokenService("test-secret-0123456789")
	require.NoError(t, err)
	b, err := NewTokenService("another-secret-9876543210")
	require.NoError(t, err)

	token, err := a.Generate("user-42")
	require.NoError(t, err)

	_, err = b.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_Garbage(t *testing.T) {
	svc, err := NewTokenService("test-secret-0123456789")
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
