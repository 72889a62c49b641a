package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "devicehub/internal/domain/errors"
	"devicehub/internal/domain/service"
	mockSvc "devicehub/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "UNAUTHENTICATED", appErr.ErrorCode())
}

func TestAuthMiddleware_Identify_NoHeader_PassesThroughAnonymously(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "")

	nextCalled := false
	err := m.Identify(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Nil(t, c.Get(KeyUserID))
}

func TestAuthMiddleware_Identify_WrongScheme(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "Basic dXNlcjpwYXNz")

	err := m.Identify(func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)

	assertUnauthenticated(t, err)
}

func TestAuthMiddleware_Identify_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("garbage").Return(nil, service.ErrTokenInvalid)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "Bearer garbage")

	err := m.Identify(func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)

	assertUnauthenticated(t, err)
}

func TestAuthMiddleware_Identify_ExpiredToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("stale").Return(nil, service.ErrTokenExpired)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "Bearer stale")

	err := m.Identify(func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)

	assertUnauthenticated(t, err)
}

func TestAuthMiddleware_Identify_ValidToken_SetsIdentity(t *testing.T) {
	userID := uuid.New()
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("good").Return(&service.Claims{UserID: userID}, nil)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "Bearer good")

	nextCalled := false
	err := m.Identify(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Equal(t, userID, c.Get(KeyUserID))
}

func TestAuthMiddleware_RequireAuth_Anonymous(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "")

	err := m.RequireAuth(func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)

	assertUnauthenticated(t, err)
}

func TestAuthMiddleware_RequireAuth_Authenticated(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newDiscardLogger())
	c, _ := newAuthTestContext(t, "")
	c.Set(KeyUserID, uuid.New())

	nextCalled := false
	err := m.RequireAuth(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestUserID_Missing(t *testing.T) {
	c, _ := newAuthTestContext(t, "")

	_, err := UserID(c)

	assertUnauthenticated(t, err)
}

// serveIdentified runs a request through Identify and the central error
// handler, returning the rendered response.
func serveIdentified(t *testing.T, tokenSvc *mockSvc.MockTokenService, authHeader string, logger *slog.Logger) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	m := NewAuthMiddleware(tokenSvc, logger)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, m.Identify)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthMiddleware_Identify_RejectionBodiesAreIndistinguishable(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("stale").Return(nil, service.ErrTokenExpired)
	tokenSvc.EXPECT().Verify("garbage").Return(nil, service.ErrTokenInvalid)

	expired := serveIdentified(t, tokenSvc, "Bearer stale", newDiscardLogger())
	invalid := serveIdentified(t, tokenSvc, "Bearer garbage", newDiscardLogger())
	malformed := serveIdentified(t, tokenSvc, "Basic dXNlcjpwYXNz", newDiscardLogger())

	assert.Equal(t, http.StatusUnauthorized, expired.Code)
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
	assert.Equal(t, http.StatusUnauthorized, malformed.Code)

	// The client must not be able to tell why the token was rejected.
	assert.Equal(t, expired.Body.String(), invalid.Body.String())
	assert.Equal(t, invalid.Body.String(), malformed.Body.String())
	assert.NotContains(t, expired.Body.String(), "expired")
}

func TestAuthMiddleware_Identify_RejectionReasonIsLogged(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("stale").Return(nil, service.ErrTokenExpired)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := serveIdentified(t, tokenSvc, "Bearer stale", logger)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, buf.String(), "token has expired")
}
