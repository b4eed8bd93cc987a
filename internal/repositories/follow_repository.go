package repositories

import (
	"errors"

	"civix_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFollowing = errors.New("user already follows this report")
	ErrFollowNotFound   = errors.New("follow not found")
)

type FollowRepository interface {
	Create(db *gorm.DB, follow *models.Follow) error
	DeleteByUserAndReport(db *gorm.DB, userID, reportID uint) error
}

type followRepository struct{}

func NewFollowRepository() FollowRepository {
	return &followRepository{}
}

func (r *followRepository) Create(db *gorm.DB, follow *models.Follow) error {
	if err := db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *followRepository) DeleteByUserAndReport(db *gorm.DB, userID, reportID uint) error {
	result := db.Where("user_id = ? AND report_id = ?", userID, reportID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}
