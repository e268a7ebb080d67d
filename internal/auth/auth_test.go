package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/moentix-be/internal/models"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("secret", "moentix-test", time.Hour)
	user := models.User{ID: 42, Name: "Ana", Email: "ana@example.com"}

	t.Run("round trip", func(t *testing.T) {
		token, err := tm.Generate(user)
		require.NoError(t, err)

		session, err := tm.Parse(token)
		require.NoError(t, err)
		require.Equal(t, Session{UserID: 42, Name: "Ana", Email: "ana@example.com"}, session)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenManager("other", "moentix-test", time.Hour).Generate(user)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewTokenManager("secret", "someone-else", time.Hour).Generate(user)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", "moentix-test", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Generate(user)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects other algorithms", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "42",
			"iss": "moentix-test",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.Parse("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)
	require.True(t, CheckPassword(hash, "s3cret!"))
	require.False(t, CheckPassword(hash, "wrong"))
	require.False(t, CheckPassword("not-a-hash", "s3cret!"))
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)

	ctx := WithSession(context.Background(), Session{UserID: 7})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, int64(7), s.UserID)
}
