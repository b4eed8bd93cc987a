package apperrors

// ErrorCode is the machine-readable error code returned to clients.
type ErrorCode string

// Generic, non-domain codes.
const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Common business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication and authorization
	CodeUnauthorized            ErrorCode = "UNAUTHORIZED"
	CodeForbidden               ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountNotActive        ErrorCode = "ACCOUNT_NOT_ACTIVE"
	CodeInvalidToken            ErrorCode = "INVALID_TOKEN"
	CodeInvalidTokenScope       ErrorCode = "INVALID_TOKEN_SCOPE"
	CodeTokenSuperseded         ErrorCode = "TOKEN_SUPERSEDED"
	CodeInvalidVerificationCode ErrorCode = "INVALID_VERIFICATION_CODE"
)
