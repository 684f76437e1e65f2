package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetToken generates a password-reset token. The bare token is sent to
// the user out-of-band; only its sha256 hash is ever stored, so a database
// leak does not expose usable tokens.
func NewResetToken() (bare, hashed string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	bare = hex.EncodeToString(buf)

	return bare, HashResetToken(bare), nil
}

// HashResetToken hashes a bare reset token for storage or comparison.
func HashResetToken(bare string) string {
	sum := sha256.Sum256([]byte(bare))
	return hex.EncodeToString(sum[:])
}
