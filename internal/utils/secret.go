package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecretKey returns length cryptographically random bytes, hex encoded.
func GenerateSecretKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
