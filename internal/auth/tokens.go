package auth

import (
	"errors"
	"strconv"
	"time"

	"civix_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ScopeResetPassword is the scope claim carried by reset tokens; the guard
// rejects any other scope on the reset-password endpoint.
const ScopeResetPassword = "reset_password"

// ErrInvalidToken collapses every verification failure (bad signature,
// expired, malformed, wrong signing method) into one sentinel. Callers that
// need finer detail (scope, issued-at) inspect the parsed claims instead.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenConfig carries the three independent secrets and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	ResetSecret   string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
}

// TokenManager mints and verifies the three token kinds. Each kind is
// signed with its own secret so compromising one cannot forge another.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		resetSecret:   []byte(cfg.ResetSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		resetTTL:      cfg.ResetTTL,
	}
}

// AccessClaims identify the caller on regular API requests.
type AccessClaims struct {
	Phone string `json:"phoneNumber"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry the subject only; everything else lives in the
// refresh-token table row.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// ResetClaims authorize exactly one password change.
type ResetClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTTL exposes the refresh-token lifetime so the store can compute
// row expirations consistently with the JWT exp claim.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GeneratePair signs an access and a refresh token. The two signatures are
// independent, so they are computed concurrently.
func (m *TokenManager) GeneratePair(user *models.User) (*TokenPair, error) {
	type signResult struct {
		token string
		err   error
	}

	accessCh := make(chan signResult, 1)
	go func() {
		token, err := m.generateAccessToken(user)
		accessCh <- signResult{token: token, err: err}
	}()

	refreshToken, refreshErr := m.generateRefreshToken(user.ID)
	access := <-accessCh

	if access.err != nil {
		return nil, access.err
	}
	if refreshErr != nil {
		return nil, refreshErr
	}

	return &TokenPair{
		AccessToken:  access.token,
		RefreshToken: refreshToken,
	}, nil
}

func (m *TokenManager) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Phone: user.Phone,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

func (m *TokenManager) generateRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti makes every refresh token unique even when two are
			// minted for the same user within the same second; rotation
			// depends on the token string being unique in the store.
			ID:        uuid.NewString(),
			Subject:   subject(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
}

// GenerateResetToken signs a short-lived token scoped to password reset.
func (m *TokenManager) GenerateResetToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		Scope: ScopeResetPassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.resetSecret)
}

// ParseAccess verifies an access token against the access secret.
func (m *TokenManager) ParseAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(tokenString, claims, m.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token against the refresh secret.
func (m *TokenManager) ParseRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(tokenString, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseReset verifies a reset token against the reset secret. The scope and
// issued-at checks belong to the guard, not to signature verification.
func (m *TokenManager) ParseReset(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := m.parse(tokenString, claims, m.resetSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *TokenManager) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// SubjectUserID decodes the numeric user id from a subject claim.
func SubjectUserID(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func subject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
