package database

import (
	"civix_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectGorm opens the Postgres pool. TranslateError turns driver-specific
// unique violations into gorm.ErrDuplicatedKey, which the repositories
// depend on.
func ConnectGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate applies the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.Vote{},
		&models.Follow{},
	)
}
