package handlers

import (
	"net/http"

	"civix_backend/internal/logger"
	"civix_backend/internal/services"
	"civix_backend/internal/services/dto"
	"civix_backend/pkg/apperrors"
	"civix_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a pending account and sends a verification code by SMS
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration data"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// VerifyRegisterCode godoc
// @Summary      Verify the registration SMS code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyRegisterCodeRequest true "Phone and code"
// @Success      200 {object} map[string]string
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /auth/register/verify [post]
func (h *AuthHandler) VerifyRegisterCode(c *gin.Context) {
	var req dto.VerifyRegisterCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyRegisterCode(h.GetDB(c), req.Phone, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Phone number verified, account pending approval"})
}

// ResendRegisterCode godoc
// @Summary      Resend the registration SMS code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.ResendRegisterCodeRequest true "Phone"
// @Success      200 {object} map[string]string
// @Router       /auth/register/resend [post]
func (h *AuthHandler) ResendRegisterCode(c *gin.Context) {
	var req dto.ResendRegisterCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResendRegisterCode(h.GetDB(c), req.Phone); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// Login godoc
// @Summary      Log in with phone and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apperrors.ErrorResponse
// @Failure      403 {object} apperrors.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Rotate a refresh token
// @Description  Consumes the presented refresh token and issues a new pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(h.GetDB(c), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LogoutRequest true "Refresh token"
// @Success      200 {object} map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RecoverPassword godoc
// @Summary      Start password recovery
// @Description  Sends a recovery code by SMS. Always answers 200 so the
// @Description  endpoint cannot be used to probe which phones are registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RecoverPasswordRequest true "Phone"
// @Success      200 {object} map[string]string
// @Router       /auth/recover-password [post]
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req dto.RecoverPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.SendRecoverPasswordCode(h.GetDB(c), req.Phone); err != nil {
		// Provider outages are logged but still answered with 200: a
		// distinguishable failure here would leak which phones exist.
		logger.CtxWithError(c.Request.Context(), "recover password send failed", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the phone number is registered, a code has been sent"})
}

// VerifyRecoverPasswordCode godoc
// @Summary      Verify the recovery SMS code
// @Description  Exchanges a valid recovery code for a short-lived reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyRecoverPasswordRequest true "Phone and code"
// @Success      200 {object} dto.ResetTokenResponse
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /auth/recover-password/verify [post]
func (h *AuthHandler) VerifyRecoverPasswordCode(c *gin.Context) {
	var req dto.VerifyRecoverPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resetToken, err := h.authService.VerifyRecoverPasswordCode(h.GetDB(c), req.Phone, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetTokenResponse{ResetToken: resetToken})
}

// ResetPassword godoc
// @Summary      Set a new password
// @Description  Requires a valid reset token in the Authorization header
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ResetPasswordRequest true "New password"
// @Success      200 {object} map[string]string
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// ResetTokenGuard already validated the token and stored the subject.
	userIDVal, exists := c.Get(string(contextkeys.ResetUserIDKey))
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Reset token not validated"))
		return
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		apperrors.HandleError(c, apperrors.InternalError(nil))
		return
	}

	if err := h.authService.ResetPassword(h.GetDB(c), userID, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
