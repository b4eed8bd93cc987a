package repositories

import (
	"errors"
	"time"

	"civix_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the user directory. Repositories are stateless; the
// *gorm.DB handle (pool or test transaction) is passed per call.
type UserRepository interface {
	// FindByID loads a user, password hash included.
	FindByID(db *gorm.DB, id uint) (*models.User, error)

	// FindByPhone loads a user by phone number, password hash included.
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)

	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error

	// UpdateStatus moves the user to a new lifecycle status.
	UpdateStatus(db *gorm.DB, userID uint, status models.UserStatus) error

	// UpdatePassword stores a new hash and stamps password_updated_at,
	// which logically revokes reset tokens issued before the change.
	UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error

	FindAll(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Status   models.UserStatus
	Role     models.UserRole
	Page     int
	PageSize int
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		// The unique index on phone is the source of truth for duplicates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *userRepository) UpdateStatus(db *gorm.DB, userID uint, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":       passwordHash,
		"password_updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindAll(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&users).Error
	return users, total, err
}
