package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	signed, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", time.Hour).Issue("user-123")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(bad)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
