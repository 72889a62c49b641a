package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "devicehub/internal/delivery/context"
	domainerrors "devicehub/internal/domain/errors"
	"devicehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// KeyUserID is the echo context key under which Identify stores the caller's id.
const KeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Identify resolves the caller's identity from the Authorization header.
//
// It is registered globally: requests without the header pass through
// anonymously and downstream guards decide whether that is acceptable. A
// header that is present but malformed or carries an invalid token is
// rejected here with 401, before any handler runs. Every rejection answers
// with the same generic body: whether the token was malformed, forged or
// merely expired is logged server-side, never told to the client.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			m.log(c).Warn("Rejected credentials", slog.String("reason", "authorization header is not a Bearer token"))

			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			reason := "token is invalid"
			if errors.Is(err, service.ErrTokenExpired) {
				reason = "token has expired"
			}
			m.log(c).Warn("Rejected credentials", slog.String("reason", reason))

			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		// Set user info on the context for guards and handlers to use.
		c.Set(KeyUserID, claims.UserID)

		return next(c)
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
// It must be used AFTER the Identify middleware.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(KeyUserID).(uuid.UUID); !ok {
			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		return next(c)
	}
}

// UserID extracts the authenticated caller's id set by Identify.
func UserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(KeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return userID, nil
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	fallback := m.logger
	if fallback == nil {
		fallback = slog.Default()
	}

	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), fallback)
}
