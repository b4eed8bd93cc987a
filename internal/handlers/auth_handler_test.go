package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civix_backend/internal/services/dto"
	"civix_backend/internal/validator"
	"civix_backend/pkg/apperrors"
	"civix_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// stubAuthService lets handler behavior be tested without a database or
// provider.
type stubAuthService struct {
	registerErr error
	recoverErr  error
	refreshResp *dto.LoginResponse
	refreshErr  error
	resetErr    error

	recoverCalls []string
}

func (s *stubAuthService) Register(_ *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &dto.UserResponse{ID: 1, Phone: req.Phone, Name: req.Name, LastName: req.LastName, Role: "neighbor"}, nil
}

func (s *stubAuthService) Login(_ *gorm.DB, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, apperrors.ErrInvalidCredentials
}

func (s *stubAuthService) Refresh(_ *gorm.DB, _ string) (*dto.LoginResponse, error) {
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthService) Logout(_ *gorm.DB, _ string) error { return nil }

func (s *stubAuthService) VerifyRegisterCode(_ *gorm.DB, _, _ string) error { return nil }

func (s *stubAuthService) ResendRegisterCode(_ *gorm.DB, _ string) error { return nil }

func (s *stubAuthService) SendRecoverPasswordCode(_ *gorm.DB, phone string) error {
	s.recoverCalls = append(s.recoverCalls, phone)
	return s.recoverErr
}

func (s *stubAuthService) VerifyRecoverPasswordCode(_ *gorm.DB, _, _ string) (string, error) {
	return "reset-token", nil
}

func (s *stubAuthService) ValidateResetToken(_ *gorm.DB, _ string) (uint, error) { return 1, nil }

func (s *stubAuthService) ResetPassword(_ *gorm.DB, _ uint, _ string) error { return s.resetErr }

func newAuthTestRouter(service *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(NewBaseHandler(validator.New()), service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/refresh", handler.Refresh)
	router.POST("/auth/recover-password", handler.RecoverPassword)
	router.POST("/auth/reset-password", handler.ResetPassword)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	w := postJSON(router, "/auth/register", map[string]string{
		"phone":    "not-a-phone",
		"password": "short",
		"name":     "A",
		"lastName": "B",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	// Details use the json field names from the DTO.
	assert.Contains(t, w.Body.String(), `"phone"`)
	assert.Contains(t, w.Body.String(), `"password"`)
}

func TestRegisterHandler_Success(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	w := postJSON(router, "/auth/register", map[string]string{
		"phone":    "+15551234567",
		"password": "password123",
		"name":     "Test",
		"lastName": "Neighbor",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "+15551234567")
}

func TestRecoverPasswordHandler_Always200(t *testing.T) {
	// Even a provider outage is answered with 200; a visible failure would
	// reveal which phones are registered.
	service := &stubAuthService{recoverErr: apperrors.VerificationSendFailed(assert.AnError)}
	router := newAuthTestRouter(service)

	w := postJSON(router, "/auth/recover-password", map[string]string{
		"phone": "+15551234567",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"+15551234567"}, service.recoverCalls)
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{refreshErr: apperrors.ErrInvalidRefreshToken})

	w := postJSON(router, "/auth/refresh", map[string]string{
		"refreshToken": "stale-token",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestResetPasswordHandler_WithoutGuardContext(t *testing.T) {
	// The route is always registered behind ResetTokenGuard; if the guard
	// did not run, the handler must refuse rather than act on user zero.
	router := newAuthTestRouter(&stubAuthService{})

	w := postJSON(router, "/auth/reset-password", map[string]string{
		"newPassword": "brand-new-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
