package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrNotAToken is returned when the credential does not parse as a JWT,
// which is legal: the Identity Service may mint fully opaque tokens.
var ErrNotAToken = errors.New("jwt: credential is not a decodable token")

// Claims is the advisory metadata read from an access token. Zero time
// values mean the claim was absent.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// ExpiresWithin reports whether the token expires within d of now. Tokens
// without an expiry claim never report as expiring.
func (c *Claims) ExpiresWithin(d time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(c.ExpiresAt) <= d
}

// Introspect decodes the token's claims WITHOUT signature verification.
func Introspect(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNotAToken
	}

	parser := jwtlib.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAToken, err)
	}

	claims := &Claims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}
