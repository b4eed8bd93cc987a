package services

import (
	"time"

	"civix_backend/internal/auth"
	"civix_backend/internal/logger"
	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/services/dto"
	"civix_backend/internal/sms"
	"civix_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error

	VerifyRegisterCode(db *gorm.DB, phone, code string) error
	ResendRegisterCode(db *gorm.DB, phone string) error

	SendRecoverPasswordCode(db *gorm.DB, phone string) error
	VerifyRecoverPasswordCode(db *gorm.DB, phone, code string) (string, error)

	// ValidateResetToken is the reset-token guard: scope, account
	// eligibility and password-change supersession checks. On success it
	// returns the user id the reset-password step acts on.
	ValidateResetToken(db *gorm.DB, tokenString string) (uint, error)
	ResetPassword(db *gorm.DB, userID uint, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	registerChannel  *sms.Channel
	recoverChannel   *sms.Channel
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
	registerChannel *sms.Channel,
	recoverChannel *sms.Channel,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		registerChannel:  registerChannel,
		recoverChannel:   recoverChannel,
	}
}

// Register creates a pending_verification user and sends the first
// registration code.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Phone:        req.Phone,
		PasswordHash: hash,
		Name:         req.Name,
		LastName:     req.LastName,
		Role:         models.UserRoleNeighbor,
		Status:       models.UserStatusPendingVerification,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrPhoneAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// The user row is intentionally kept when the send fails; the client
	// recovers through the resend endpoint.
	if err := s.registerChannel.SendCode(user.Phone); err != nil {
		return nil, apperrors.VerificationSendFailed(err)
	}

	return dto.NewUserResponse(user), nil
}

// Login validates credentials, mints a token pair and persists the refresh
// token.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.validateCredentials(db, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issuePair(db, user)
}

// validateCredentials checks phone+password. Unknown phone and wrong
// password are indistinguishable to the caller; account status is checked
// only after the password matched so a wrong password never leaks status.
func (s *AuthServiceImpl) validateCredentials(db *gorm.DB, phone, password string) (*models.User, error) {
	user, err := s.userRepo.FindByPhone(db, phone)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountNotActive
	}

	return user, nil
}

// Refresh rotates a refresh token: the presented token is consumed (deleted)
// and a fresh pair is issued. Two concurrent calls with the same token race
// on the delete; exactly one wins, the loser gets ErrInvalidRefreshToken.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	userID, err := auth.SubjectUserID(claims.Subject)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	var response *dto.LoginResponse
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.refreshTokenRepo.FindValid(tx, refreshToken, userID); err != nil {
			if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return apperrors.ErrInvalidRefreshToken
			}
			return apperrors.InternalError(err)
		}

		if err := s.refreshTokenRepo.DeleteByToken(tx, refreshToken); err != nil {
			if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
				// Lost the rotation race: someone else consumed it first.
				return apperrors.ErrInvalidRefreshToken
			}
			return apperrors.InternalError(err)
		}

		user, err := s.userRepo.FindByID(tx, userID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrInvalidRefreshToken
			}
			return apperrors.InternalError(err)
		}

		resp, err := s.issuePair(tx, user)
		if err != nil {
			return err
		}
		response = resp
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return response, nil
}

// issuePair mints a token pair and persists the refresh half.
func (s *AuthServiceImpl) issuePair(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	pair, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.refreshTokenRepo.Create(db, record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// Logout deletes the presented refresh token. Deleting an unknown token is
// not an error for the client.
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyRegisterCode checks the registration code and moves the user from
// pending_verification to pending_approval. Every failure after a valid
// code, including an unknown phone, folds into the same invalid-code error
// so the endpoint cannot confirm account existence.
func (s *AuthServiceImpl) VerifyRegisterCode(db *gorm.DB, phone, code string) error {
	if err := s.registerChannel.CheckCode(phone, code); err != nil {
		return apperrors.ErrInvalidVerificationCode
	}

	user, err := s.userRepo.FindByPhone(db, phone)
	if err != nil {
		logger.Warn("register code approved for unknown phone", "error", err.Error())
		return apperrors.ErrInvalidVerificationCode
	}

	if user.Status != models.UserStatusPendingVerification {
		logger.Warn("register code approved for user outside pending_verification",
			"user_id", user.ID, "status", string(user.Status))
		return apperrors.ErrInvalidVerificationCode
	}

	if err := s.userRepo.UpdateStatus(db, user.ID, models.UserStatusPendingApproval); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ResendRegisterCode re-sends the registration code for a user stuck in
// pending_verification (for example when the first send failed).
func (s *AuthServiceImpl) ResendRegisterCode(db *gorm.DB, phone string) error {
	user, err := s.userRepo.FindByPhone(db, phone)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same no-op posture as password recovery: no enumeration.
			logger.Warn("resend register code for unknown phone")
			return nil
		}
		return apperrors.InternalError(err)
	}

	if user.Status != models.UserStatusPendingVerification {
		return nil
	}

	if err := s.registerChannel.SendCode(user.Phone); err != nil {
		return apperrors.VerificationSendFailed(err)
	}
	return nil
}

// SendRecoverPasswordCode starts password recovery. An unknown phone is a
// silent no-op: the provider is never called and the caller sees success,
// so the endpoint cannot be used to enumerate accounts.
func (s *AuthServiceImpl) SendRecoverPasswordCode(db *gorm.DB, phone string) error {
	user, err := s.userRepo.FindByPhone(db, phone)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("password recovery requested for unknown phone")
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.recoverChannel.SendCode(user.Phone); err != nil {
		return apperrors.VerificationSendFailed(err)
	}
	return nil
}

// VerifyRecoverPasswordCode checks the recovery code and issues a reset
// token. Unlike the send step, a missing user here is a real error: the
// caller already proved phone possession with a valid code.
func (s *AuthServiceImpl) VerifyRecoverPasswordCode(db *gorm.DB, phone, code string) (string, error) {
	if err := s.recoverChannel.CheckCode(phone, code); err != nil {
		return "", apperrors.ErrInvalidVerificationCode
	}

	user, err := s.userRepo.FindByPhone(db, phone)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	resetToken, err := s.tokens.GenerateResetToken(user)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return resetToken, nil
}

// ValidateResetToken verifies signature, scope, account eligibility and the
// password-change supersession rule, in that order.
func (s *AuthServiceImpl) ValidateResetToken(db *gorm.DB, tokenString string) (uint, error) {
	claims, err := s.tokens.ParseReset(tokenString)
	if err != nil {
		return 0, apperrors.ErrInvalidResetToken
	}

	if claims.Scope != auth.ScopeResetPassword {
		return 0, apperrors.ErrInvalidTokenScope
	}

	userID, err := auth.SubjectUserID(claims.Subject)
	if err != nil {
		return 0, apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return 0, apperrors.ErrUserNotEligible
		}
		return 0, apperrors.InternalError(err)
	}

	if user.Status != models.UserStatusActive && user.Status != models.UserStatusPendingApproval {
		return 0, apperrors.ErrUserNotEligible
	}

	// A password change at or after the token's issue time logically revokes
	// the token even though its signature is still valid.
	if user.PasswordUpdatedAt != nil && claims.IssuedAt != nil &&
		!user.PasswordUpdatedAt.Before(claims.IssuedAt.Time) {
		return 0, apperrors.ErrTokenSuperseded
	}

	return userID, nil
}

// ResetPassword stores a new password hash and stamps the change time.
// Outstanding refresh tokens stay valid; only reset tokens are superseded.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, userID uint, newPassword string) error {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotEligible
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
