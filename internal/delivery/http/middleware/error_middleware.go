package middleware

import (
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "devicehub/internal/delivery/context"
	"devicehub/internal/delivery/http/response"
	domainerrors "devicehub/internal/domain/errors"

	validatorLib "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Validation failures carry per-field information worth surfacing.
	var validationErrs validatorLib.ValidationErrors
	if errors.As(err, &validationErrs) {
		appErr := domainerrors.ErrValidationFailed
		response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), formatValidationErrors(validationErrs))

		return
	}

	// Classified application errors map directly onto the response contract.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}
		response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	// Echo's own errors (404 route, 405, body limit) keep their status.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		response.Error(c, httpErr.Code, "HTTP_ERROR", fmt.Sprintf("%v", httpErr.Message), nil)

		return
	}

	// Everything else is unexpected: log the cause, answer with a generic 500.
	m.log(c).Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message())
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// formatValidationErrors renders field-level failures into response details.
func formatValidationErrors(errs validatorLib.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		detail := fmt.Sprintf("field '%s' failed on the '%s' rule", strings.ToLower(fieldErr.Field()), fieldErr.Tag())
		details = append(details, detail)
	}

	return details
}
