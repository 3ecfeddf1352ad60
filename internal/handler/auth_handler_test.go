package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(ctx, tokenString)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}

func setupAuthRouter(svc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/v1/login", h.Login)
	router.POST("/v1/register", h.Register)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc)

	svc.On("Login", mock.Anything, mock.MatchedBy(func(req *dto.LoginRequest) bool {
		return req.Email == "lina@example.com"
	})).Return(&dto.AuthResponse{
		User:      &entity.User{Email: "lina@example.com"},
		Token:     "signed-token",
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	payload, _ := json.Marshal(gin.H{"email": "lina@example.com", "password": "supersecret"})
	req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc)

	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperror.New(apperror.ErrUnauthorized, "invalid email or password"))

	payload, _ := json.Marshal(gin.H{"email": "lina@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
}

func TestAuthHandler_Register_BindingErrors(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc)

	// Missing password and bad email shape never reach the service.
	payload, _ := json.Marshal(gin.H{"full_name": "X", "email": "not-an-email"})
	req := httptest.NewRequest(http.MethodPost, "/v1/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Errors)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}
