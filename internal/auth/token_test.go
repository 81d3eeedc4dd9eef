package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	m := NewTokenManager()

	tok, err := m.Issue("noone@example.com", secret)
	require.NoError(t, err)

	email, err := m.Validate(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "noone@example.com", email)
}

func TestValidate_ExpiresAfterThirtyMinutes(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := &TokenManager{TTL: AccessTokenTTL, Now: fixedClock(start)}

	tok, err := m.Issue("u@example.com", secret)
	require.NoError(t, err)

	m.Now = fixedClock(start.Add(29 * time.Minute))
	_, err = m.Validate(tok, secret)
	require.NoError(t, err, "still valid before expiry")

	m.Now = fixedClock(start.Add(31 * time.Minute))
	_, err = m.Validate(tok, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	m := NewTokenManager()
	tok, err := m.Issue("u2@example.com", []byte("right-secret"))
	require.NoError(t, err)

	_, err = m.Validate(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager().Validate("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager().Validate(tok, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_MissingExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u@example.com",
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager().Validate(tok, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "u@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager().Validate(tok, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, VerifyPassword("Password123!", hash))
	assert.False(t, VerifyPassword("Password123?", hash))
	assert.False(t, VerifyPassword("Password123!", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("Password123!", ""))
}

func TestPasswordHashing_LongPasswords(t *testing.T) {
	t.Parallel()

	long := "Aa1!" + strings.Repeat("a", 250)
	require.Len(t, long, 254)

	hash, err := HashPassword(long)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(long, hash))
	assert.False(t, VerifyPassword(long[:71], hash))
	// Only the first 72 bytes take part, as with every bcrypt implementation.
	assert.True(t, VerifyPassword(long[:72], hash))
}
