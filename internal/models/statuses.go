package models

type UserStatus string
type UserRole string
type ReportStatus string

const (
	// User status lifecycle is strictly forward: pending_verification ->
	// pending_approval -> active. Rejected/banned are administrative side
	// exits; auth flows never move a user backwards.
	UserStatusPendingVerification UserStatus = "pending_verification"
	UserStatusPendingApproval     UserStatus = "pending_approval"
	UserStatusActive              UserStatus = "active"
	UserStatusRejected            UserStatus = "rejected"
	UserStatusBanned              UserStatus = "banned"

	UserRoleNeighbor UserRole = "neighbor"
	UserRoleAdmin    UserRole = "admin"

	ReportStatusOpen       ReportStatus = "open"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
)
