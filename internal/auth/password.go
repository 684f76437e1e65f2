package auth

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword hashes a plaintext password with argon2id using the library
// defaults. The encoded form embeds salt and parameters.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()

	hash, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the encoded
// hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
