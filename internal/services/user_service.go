package services

import (
	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/services/dto"
	"civix_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, userID uint) (*dto.UserDetail, error)
	List(db *gorm.DB, filter repositories.UserFilter) (*dto.UserListResponse, error)
	UpdateStatus(db *gorm.DB, userID uint, status models.UserStatus) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, userID uint) (*dto.UserDetail, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return userDetail(user), nil
}

func (s *UserServiceImpl) List(db *gorm.DB, filter repositories.UserFilter) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindAll(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	details := make([]dto.UserDetail, 0, len(users))
	for i := range users {
		details = append(details, *userDetail(&users[i]))
	}

	return &dto.UserListResponse{
		Users:    details,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateStatus is the administrative approval/rejection step. The lifecycle
// only moves forward: a user can be activated from pending_approval, and an
// active user can still be banned.
func (s *UserServiceImpl) UpdateStatus(db *gorm.DB, userID uint, status models.UserStatus) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !statusTransitionAllowed(user.Status, status) {
		return apperrors.ErrInvalidStatus("user",
			"Status transition not allowed from "+string(user.Status))
	}

	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func statusTransitionAllowed(from, to models.UserStatus) bool {
	switch to {
	case models.UserStatusActive, models.UserStatusRejected:
		return from == models.UserStatusPendingApproval
	case models.UserStatusBanned:
		return from == models.UserStatusActive || from == models.UserStatusPendingApproval
	default:
		return false
	}
}

func userDetail(user *models.User) *dto.UserDetail {
	return &dto.UserDetail{
		ID:       user.ID,
		Phone:    user.Phone,
		Name:     user.Name,
		LastName: user.LastName,
		Role:     user.Role,
		Status:   user.Status,
	}
}
