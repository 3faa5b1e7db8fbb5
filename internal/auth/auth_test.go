package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st.UserRepo(), "test-secret", time.Hour, nil)
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tok, err := s.Signup(ctx, "  Ada@Example.com ", "ada", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, "ada", tok.Username)

	uid, err := s.Verify(tok.AccessToken)
	require.NoError(t, err)

	u, err := s.users.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, u.ID, uid)
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	login, err := s.Login(ctx, "ADA@example.com", "hunter2")
	require.NoError(t, err)
	uid2, err := s.Verify(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uid, uid2)
}

func TestSignup_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "ada@example.com", "ada", "pw")
	require.NoError(t, err)

	tests := []struct {
		name, email, username, password string
	}{
		{"duplicate email", "ADA@example.com", "other", "pw"},
		{"bad email", "not-an-email", "ada", "pw"},
		{"no username", "b@example.com", " ", "pw"},
		{"no password", "c@example.com", "c", ""},
		{"password too long", "d@example.com", "d", strings.Repeat("x", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tt.email, tt.username, tt.password)
			assert.True(t, errors.Is(err, quiz.ErrValidation), "got %v", err)
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.Signup(ctx, "ada@example.com", "ada", "right")
	require.NoError(t, err)

	_, err = s.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Rejects(t *testing.T) {
	s := newTestService(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, err := s.issue(quiz.User{ID: "u1", Username: "ada"})
	require.NoError(t, err)

	_, err = s.Verify(tok.AccessToken)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		s.now = func() time.Time { return base.Add(2 * time.Hour) }
		t.Cleanup(func() { s.now = func() time.Time { return base } })
		_, err := s.Verify(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(nil, "other-secret", time.Hour, nil)
		other.now = s.now
		_, err := other.Verify(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(base.Add(time.Hour)),
		}}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Verify(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = s.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := s.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
