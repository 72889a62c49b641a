// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"devicehub/config"
	"devicehub/internal/domain/service"
)

// accessTokenTTL is the fixed lifetime of every issued token. Expiry is the
// only time-based invalidation: there is no revocation list and no refresh.
const accessTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte // Process-wide signing secret, read-only after startup.
}

// NewJWTService is the constructor for jwtService. A missing secret is a
// startup-fatal condition, not a per-request one.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: []byte(cfg.SecretKey.Access)}, nil
}

// Issue creates a signed HS256 token for the given user with a 1 hour expiry.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and extracts the
// identity it asserts. Expired tokens map to service.ErrTokenExpired, any
// other failure to service.ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenInvalid
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		// A well-signed token without a usable user id is still malformed.
		return nil, service.ErrTokenInvalid
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: *registered,
	}, nil
}
