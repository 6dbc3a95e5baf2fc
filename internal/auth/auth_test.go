package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("customer123")
	require.NoError(t, err)
	require.NotEqual(t, "customer123", hash)

	require.NoError(t, CheckPassword(hash, "customer123"))
	require.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestNewSession(t *testing.T) {
	sess := NewSession(5, time.Hour)

	require.NotEmpty(t, sess.Token)
	require.Equal(t, 5, sess.UserID)
	require.True(t, sess.ExpiresAt.After(time.Now().Add(50*time.Minute)))

	// Tokens must not repeat.
	require.NotEqual(t, sess.Token, NewSession(5, time.Hour).Token)
}
