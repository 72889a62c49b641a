package middleware

import (
	"log/slog"

	deliverycontext "devicehub/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestMiddleware seeds every request with an id and a request-scoped logger.
type RequestMiddleware struct {
	logger *slog.Logger
}

// NewRequestMiddleware creates a new request context middleware
func NewRequestMiddleware(logger *slog.Logger) *RequestMiddleware {
	return &RequestMiddleware{
		logger: logger,
	}
}

// Handle propagates the inbound X-Request-Id (or mints one) into the echo
// context, the request context, and the response header, and stores a logger
// annotated with it so deeper layers log with the same id.
func (m *RequestMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		requestLogger := m.logger.With(slog.String("requestID", requestID))

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, requestLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
