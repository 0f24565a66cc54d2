package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const verificationTokenBytes = 32

// NewVerificationToken generates a cryptographically random 64-character hex
// token suitable for embedding in a URL path segment.
func NewVerificationToken() (string, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
