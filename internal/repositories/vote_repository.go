package repositories

import (
	"errors"

	"civix_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlreadyVoted = errors.New("user already voted for this report")
	ErrVoteNotFound = errors.New("vote not found")
)

type VoteRepository interface {
	Create(db *gorm.DB, vote *models.Vote) error
	DeleteByUserAndReport(db *gorm.DB, userID, reportID uint) error
	CountByReport(db *gorm.DB, reportID uint) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() VoteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(db *gorm.DB, vote *models.Vote) error {
	if err := db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (r *voteRepository) DeleteByUserAndReport(db *gorm.DB, userID, reportID uint) error {
	result := db.Where("user_id = ? AND report_id = ?", userID, reportID).Delete(&models.Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

func (r *voteRepository) CountByReport(db *gorm.DB, reportID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Vote{}).Where("report_id = ?", reportID).Count(&count).Error
	return count, err
}
