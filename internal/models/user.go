package models

import "time"

type User struct {
	BaseModel
	Phone        string     `gorm:"uniqueIndex;not null" json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	LastName     string     `gorm:"not null" json:"lastName"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'neighbor'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(30);not null;default:'pending_verification'" json:"status"`
	// Set on every password reset; the reset-token guard compares it against
	// the token's issued-at to invalidate tokens minted before the change.
	PasswordUpdatedAt *time.Time `json:"-"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Reports       []Report       `gorm:"foreignKey:ReporterID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}
