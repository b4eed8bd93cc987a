package apperrors

import (
	"net/http"
)

// Predeclared domain errors. Services return these so handlers and tests can
// branch on identity; never mutate them in place (use WithError/WithDetails,
// which copy).

// --- Auth: credentials ---

// ErrInvalidCredentials covers both unknown phone and wrong password so the
// login endpoint cannot be used as an account-existence oracle.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid phone number or password",
	http.StatusUnauthorized,
)

// ErrAccountNotActive is returned only after the password matched.
var ErrAccountNotActive = New(
	CodeAccountNotActive,
	"auth",
	"Account is not active",
	http.StatusForbidden,
)

// --- Auth: tokens ---

// ErrInvalidRefreshToken covers missing, expired and already-rotated
// refresh tokens; the caller never learns which.
var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired refresh token",
	http.StatusUnauthorized,
)

// ErrInvalidResetToken covers malformed, mis-signed and expired reset tokens.
var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusUnauthorized,
)

// ErrInvalidTokenScope is returned when a validly signed token carries the
// wrong scope for the password-reset endpoint.
var ErrInvalidTokenScope = New(
	CodeInvalidTokenScope,
	"auth",
	"Token is not valid for this operation",
	http.StatusUnauthorized,
)

// ErrTokenSuperseded is returned when the password changed at or after the
// reset token was issued.
var ErrTokenSuperseded = New(
	CodeTokenSuperseded,
	"auth",
	"Token has been superseded by a password change",
	http.StatusUnauthorized,
)

// ErrUserNotEligible is returned by the reset-token guard when the account
// no longer exists or its status does not allow a password reset.
var ErrUserNotEligible = New(
	CodeUnauthorized,
	"auth",
	"Account is not eligible for a password reset",
	http.StatusUnauthorized,
)

// --- Auth: verification codes ---

// ErrInvalidVerificationCode is the single public error for every failed
// code check, whatever the provider-side reason was.
var ErrInvalidVerificationCode = New(
	CodeInvalidVerificationCode,
	"verification",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

// VerificationSendFailed wraps a provider failure while sending a code.
func VerificationSendFailed(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "verification",
		"Failed to send verification code", http.StatusServiceUnavailable)
}

// --- Registration ---

// ErrPhoneAlreadyExists is returned on duplicate registration.
var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number already in use",
	http.StatusConflict,
)

// --- Generic resource factories ---

// ErrNotFound converts a repository not-found into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a repository duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a domain-specific 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus builds a 409 for operations not allowed in the current
// entity status.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}
