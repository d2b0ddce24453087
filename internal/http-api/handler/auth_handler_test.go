package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, username, password)
	var user *models.User
	if args.Get(2) != nil {
		user = args.Get(2).(*models.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func authTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc, 15*time.Minute, testLogger())
	h.RegisterRoutes(r.Group("/auth"))
	return r
}

func TestRegister_Created(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("Register", mock.Anything, "brickfan", "hunter22", "fan@example.com").Return(&models.User{
		ID: "user-1", Username: "brickfan", Email: "fan@example.com",
	}, nil)

	body, _ := json.Marshal(map[string]string{
		"username": "brickfan",
		"password": "hunter22",
		"email":    "fan@example.com",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "brickfan", resp["username"])
}

func TestRegister_DuplicateUsernameIsConflict(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("Register", mock.Anything, "brickfan", "hunter22", "fan@example.com").
		Return(nil, service.ErrNameInUse)

	body, _ := json.Marshal(map[string]string{
		"username": "brickfan",
		"password": "hunter22",
		"email":    "fan@example.com",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("Login", mock.Anything, "brickfan", "hunter22").Return(
		"access-token", "refresh-token",
		&models.User{ID: "user-1", Username: "brickfan"}, nil)

	body, _ := json.Marshal(map[string]string{"username": "brickfan", "password": "hunter22"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp["access_token"])
	assert.Equal(t, "refresh-token", resp["refresh_token"])
	assert.Equal(t, float64(900), resp["expires_in"])
}

func TestLogin_BadCredentialsIsUnauthorized(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("Login", mock.Anything, "brickfan", "wrong").
		Return("", "", nil, service.ErrInvalidCredentials)

	body, _ := json.Marshal(map[string]string{"username": "brickfan", "password": "wrong"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_ReturnsNewAccessToken(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("RefreshAccessToken", mock.Anything, "refresh-token").Return("new-access-token", nil)

	body, _ := json.Marshal(map[string]string{"refresh_token": "refresh-token"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access-token", resp["access_token"])
}

func TestLogout_RevokedTokenIsUnauthorized(t *testing.T) {
	svc := new(MockAuthService)
	r := authTestRouter(svc)

	svc.On("RevokeToken", mock.Anything, "unknown-token").Return(service.ErrInvalidToken)

	body, _ := json.Marshal(map[string]string{"refresh_token": "unknown-token"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
