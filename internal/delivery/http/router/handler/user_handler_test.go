package handler

import (
	"net/http"
	"testing"

	"devicehub/internal/domain/entity"
	domainerrors "devicehub/internal/domain/errors"
	mockUC "devicehub/internal/mocks/usecase"
	"devicehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestUserHandler(t *testing.T) (*UserHandler, *mockUC.MockUserUsecase) {
	userUC := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{
		UserUC: userUC,
		Logger: newDiscardLogger(),
	})

	return h, userUC
}

func TestUserHandler_Register_Success(t *testing.T) {
	h, userUC := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/register", h.Register)

	user := &entity.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}
	userUC.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.AuthOutput{Token: "signed-token", User: user}, nil)

	rec := doJSON(e, http.MethodPost, "/register",
		`{"name":"Test User","email":"test@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed-token"`)
	assert.Contains(t, rec.Body.String(), `"email":"test@example.com"`)
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	h, _ := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/register", h.Register)

	rec := doJSON(e, http.MethodPost, "/register",
		`{"name":"Test User","email":"not-an-email","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestUserHandler_Register_EmailTaken(t *testing.T) {
	h, userUC := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/register", h.Register)

	userUC.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrEmailTaken)

	rec := doJSON(e, http.MethodPost, "/register",
		`{"name":"Test User","email":"taken@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
}

func TestUserHandler_Login_Success(t *testing.T) {
	h, userUC := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/login", h.Login)

	user := &entity.User{ID: uuid.New(), Email: "test@example.com"}
	userUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "test@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.AuthOutput{Token: "signed-token", User: user}, nil)

	rec := doJSON(e, http.MethodPost, "/login",
		`{"email":"test@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed-token"`)
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	h, userUC := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/login", h.Login)

	userUC.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials)

	rec := doJSON(e, http.MethodPost, "/login",
		`{"email":"test@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestUserHandler_Login_MalformedBody(t *testing.T) {
	h, _ := newTestUserHandler(t)
	e := newTestEcho(t)
	e.POST("/login", h.Login)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}
