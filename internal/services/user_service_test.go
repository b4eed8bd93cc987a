package services

import (
	"testing"

	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserServiceEnv(t *testing.T) (*gorm.DB, UserService, repositories.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	userRepo := repositories.NewUserRepository()
	return db, NewUserService(userRepo), userRepo
}

func seedUser(t *testing.T, db *gorm.DB, phone string, status models.UserStatus) *models.User {
	t.Helper()
	user := &models.User{
		Phone:        phone,
		PasswordHash: "hash",
		Name:         "Test",
		LastName:     "User",
		Role:         models.UserRoleNeighbor,
		Status:       status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserService_UpdateStatus_ApprovalFlow(t *testing.T) {
	db, svc, repo := newUserServiceEnv(t)
	user := seedUser(t, db, "+15551234567", models.UserStatusPendingApproval)

	require.NoError(t, svc.UpdateStatus(db, user.ID, models.UserStatusActive))

	stored, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, stored.Status)
}

func TestUserService_UpdateStatus_RejectsInvalidTransitions(t *testing.T) {
	db, svc, _ := newUserServiceEnv(t)

	// A user who never verified their phone cannot be approved.
	unverified := seedUser(t, db, "+15551111111", models.UserStatusPendingVerification)
	err := svc.UpdateStatus(db, unverified.ID, models.UserStatusActive)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	// A rejected user stays rejected.
	rejected := seedUser(t, db, "+15552222222", models.UserStatusRejected)
	assert.Error(t, svc.UpdateStatus(db, rejected.ID, models.UserStatusActive))
}

func TestUserService_UpdateStatus_BanActiveUser(t *testing.T) {
	db, svc, repo := newUserServiceEnv(t)
	user := seedUser(t, db, "+15551234567", models.UserStatusActive)

	require.NoError(t, svc.UpdateStatus(db, user.ID, models.UserStatusBanned))

	stored, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, stored.Status)
}

func TestUserService_UpdateStatus_UnknownUser(t *testing.T) {
	db, svc, _ := newUserServiceEnv(t)

	err := svc.UpdateStatus(db, 999, models.UserStatusActive)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestUserService_List_FiltersByStatus(t *testing.T) {
	db, svc, _ := newUserServiceEnv(t)
	seedUser(t, db, "+15551111111", models.UserStatusActive)
	seedUser(t, db, "+15552222222", models.UserStatusPendingApproval)
	seedUser(t, db, "+15553333333", models.UserStatusPendingApproval)

	resp, err := svc.List(db, repositories.UserFilter{
		Status:   models.UserStatusPendingApproval,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Users, 2)
	for _, u := range resp.Users {
		assert.Equal(t, models.UserStatusPendingApproval, u.Status)
	}
}
