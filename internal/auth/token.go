package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that does not check
// out: bad signature, malformed payload, or past expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Codec issues and verifies signed session tokens carrying a user id.
type Codec struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
}

// NewCodec creates a Codec signing with the given shared secret. Tokens
// expire after expiresIn from issuance.
func NewCodec(secret, issuer string, expiresIn time.Duration) Codec {
	return Codec{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Issue produces a signed, time-bounded token whose subject is the user id.
func (c *Codec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// Verify validates a token and returns the user id it was issued for. Any
// failure is reported as ErrInvalidToken; callers do not need to distinguish
// a forged token from an expired one.
func (c *Codec) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return c.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(c.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
