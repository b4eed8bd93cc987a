package repositories

import (
	"errors"
	"time"

	"civix_backend/internal/models"

	"gorm.io/gorm"
)

// ErrRefreshTokenNotFound covers absent, expired and already-deleted rows;
// the service never learns which, so neither does the client.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository persists issued refresh tokens. A token row exists
// from login/rotation until it is consumed or swept.
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindValid looks up a row by exact token string and owning user and
	// treats expired rows as not found (lazy expiry).
	FindValid(db *gorm.DB, tokenString string, userID uint) (*models.RefreshToken, error)

	// DeleteByToken removes the row; deleting an already-consumed token
	// returns ErrRefreshTokenNotFound, which is how a rotation race loser
	// finds out it lost.
	DeleteByToken(db *gorm.DB, tokenString string) error

	// DeleteByUserID removes every token of a user (admin ban, etc).
	DeleteByUserID(db *gorm.DB, userID uint) error

	// DeleteExpired removes rows past their expiration. The background
	// sweep uses it; correctness never depends on it thanks to FindValid.
	DeleteExpired(db *gorm.DB) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindValid(db *gorm.DB, tokenString string, userID uint) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := db.Where("token = ? AND user_id = ? AND expires_at > ?", tokenString, userID, time.Now()).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByToken(db *gorm.DB, tokenString string) error {
	result := db.Where("token = ?", tokenString).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenRepository) DeleteByUserID(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
