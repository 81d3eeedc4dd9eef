package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenTTL = 30 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// TokenManager mints and validates HS256 access tokens whose subject is the
// user's email.
type TokenManager struct {
	TTL time.Duration
	Now func() time.Time
}

func NewTokenManager() *TokenManager {
	return &TokenManager{TTL: AccessTokenTTL, Now: time.Now}
}

func (m *TokenManager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Issue signs a token for email with secret.
func (m *TokenManager) Issue(email string, secret []byte) (string, error) {
	ttl := m.TTL
	if ttl == 0 {
		ttl = AccessTokenTTL
	}
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Validate checks signature, algorithm and expiry and returns the subject email.
// Every failure is reported as ErrInvalidToken with the cause wrapped.
func (m *TokenManager) Validate(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
