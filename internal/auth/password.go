package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt only looks at the first 72 bytes of a password and x/crypto refuses
// longer input, so both sides cut there.
const maxPasswordBytes = 72

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches hash. A malformed or
// unsupported hash is a mismatch, not an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}
