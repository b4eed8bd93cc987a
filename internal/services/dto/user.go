package dto

import "civix_backend/internal/models"

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=active rejected banned"`
}

// UserDetail is the admin-facing projection; unlike UserResponse it carries
// the lifecycle status.
type UserDetail struct {
	ID       uint              `json:"id"`
	Phone    string            `json:"phone"`
	Name     string            `json:"name"`
	LastName string            `json:"lastName"`
	Role     models.UserRole   `json:"role"`
	Status   models.UserStatus `json:"status"`
}

type UserListResponse struct {
	Users    []UserDetail `json:"users"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}
