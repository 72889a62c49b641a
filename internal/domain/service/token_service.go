package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failure kinds. The boundary collapses both to 401; the
// distinction exists so the middleware can log which one occurred.
var (
	// ErrTokenExpired is returned when a token's expiry instant has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned when a token's signature or payload is malformed.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity asserted by a verified token. It lives for the
// duration of one request and is never persisted.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed,
// time-limited identity tokens. Tokens are stateless: there is no revocation
// list and no refresh mechanism, so a token stays valid until its expiry.
type TokenService interface {
	// Issue creates a signed token asserting the given user identity.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks a token string and returns the identity it asserts.
	// It fails with ErrTokenExpired or ErrTokenInvalid.
	Verify(tokenString string) (*Claims, error)
}
