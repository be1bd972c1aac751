package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionToken returns 256 bits of cryptographically strong randomness,
// hex-encoded. The token is opaque; validity lives with the stored session.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
