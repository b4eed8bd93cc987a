package dto

import "civix_backend/internal/models"

type RegisterRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
	LastName string `json:"lastName" validate:"required,max=100"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyRegisterCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,min=4,max=10"`
}

type ResendRegisterCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type RecoverPasswordRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type VerifyRecoverPasswordRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,min=4,max=10"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UserResponse is the sanitized projection returned by auth flows: no
// password hash, no lifecycle status, no timestamps.
type UserResponse struct {
	ID       uint   `json:"id"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Role     string `json:"role"`
}

// NewUserResponse projects a user for client consumption.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Phone:    user.Phone,
		Name:     user.Name,
		LastName: user.LastName,
		Role:     string(user.Role),
	}
}

type LoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"resetToken"`
}
