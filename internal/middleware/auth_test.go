package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civix_backend/internal/auth"
	"civix_backend/internal/models"
	"civix_backend/pkg/apperrors"
	"civix_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		ResetSecret:   "reset-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		ResetTTL:      15 * time.Minute,
	})
}

func protectedRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := testTokens()
	router := protectedRouter(tokens)

	user := &models.User{
		BaseModel: models.BaseModel{ID: 7},
		Phone:     "+15551234567",
		Role:      models.UserRoleNeighbor,
	}
	pair, err := tokens.GeneratePair(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":7`)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := testTokens()
	router := protectedRouter(tokens)

	user := &models.User{BaseModel: models.BaseModel{ID: 7}, Phone: "+15551234567"}
	pair, err := tokens.GeneratePair(user)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", pair.AccessToken},
		{"garbage token", "Bearer not-a-jwt"},
		{"refresh token in place of access", "Bearer " + pair.RefreshToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) { c.Set("role", "neighbor"); c.Next() },
		RequireRoles(models.UserRoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	router.GET("/admin-ok",
		func(c *gin.Context) { c.Set("role", "admin"); c.Next() },
		RequireRoles(models.UserRoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// stubResetValidator lets the guard be tested without a database.
type stubResetValidator struct {
	userID uint
	err    error

	gotToken string
}

func (s *stubResetValidator) ValidateResetToken(_ *gorm.DB, tokenString string) (uint, error) {
	s.gotToken = tokenString
	return s.userID, s.err
}

func guardedRouter(validator ResetTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/reset",
		func(c *gin.Context) {
			// Stands in for DBMiddleware.
			c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
			c.Next()
		},
		ResetTokenGuard(validator),
		func(c *gin.Context) {
			userID := c.GetUint(string(contextkeys.ResetUserIDKey))
			c.JSON(http.StatusOK, gin.H{"userID": userID})
		},
	)
	return router
}

func TestResetTokenGuard_Success(t *testing.T) {
	validator := &stubResetValidator{userID: 11}
	router := guardedRouter(validator)

	req := httptest.NewRequest("POST", "/reset", nil)
	req.Header.Set("Authorization", "Bearer some-reset-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":11`)
	assert.Equal(t, "some-reset-token", validator.gotToken)
}

func TestResetTokenGuard_MissingHeader(t *testing.T) {
	router := guardedRouter(&stubResetValidator{userID: 11})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/reset", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetTokenGuard_ValidatorErrorsPropagate(t *testing.T) {
	cases := []struct {
		name     string
		err      *apperrors.AppError
		wantCode int
	}{
		{"invalid token", apperrors.ErrInvalidResetToken, http.StatusUnauthorized},
		{"wrong scope", apperrors.ErrInvalidTokenScope, http.StatusUnauthorized},
		{"superseded", apperrors.ErrTokenSuperseded, http.StatusUnauthorized},
		{"not eligible", apperrors.ErrUserNotEligible, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := guardedRouter(&stubResetValidator{err: tc.err})

			req := httptest.NewRequest("POST", "/reset", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), string(tc.err.Code))
		})
	}
}
