package auth

import (
	"testing"
	"time"

	"civix_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		ResetSecret:   "reset-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		ResetTTL:      15 * time.Minute,
	})
}

func testUser() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: 42},
		Phone:     "+15551234567",
		Role:      models.UserRoleNeighbor,
		Status:    models.UserStatusActive,
	}
}

func TestGeneratePair_AccessClaims(t *testing.T) {
	m := testTokenManager()
	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "+15551234567", claims.Phone)
	assert.Equal(t, "neighbor", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestGeneratePair_RefreshCarriesSubjectOnly(t *testing.T) {
	m := testTokenManager()
	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)

	claims, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)

	// No role or phone is recoverable from the refresh token.
	raw := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(pair.RefreshToken, raw)
	require.NoError(t, err)
	assert.NotContains(t, raw, "role")
	assert.NotContains(t, raw, "phoneNumber")
}

func TestTokenKinds_SecretsAreIsolated(t *testing.T) {
	m := testTokenManager()
	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)
	reset, err := m.GenerateResetToken(testUser())
	require.NoError(t, err)

	// Each token kind verifies only against its own secret.
	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseAccess(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseReset(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseReset(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateResetToken_ScopeAndTTL(t *testing.T) {
	m := testTokenManager()
	token, err := m.GenerateResetToken(testUser())
	require.NoError(t, err)

	claims, err := m.ParseReset(token)
	require.NoError(t, err)
	assert.Equal(t, ScopeResetPassword, claims.Scope)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestParse_ExpiredToken(t *testing.T) {
	m := NewTokenManager(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		ResetSecret:   "reset-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    -time.Minute,
		ResetTTL:      -time.Minute,
	})

	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_GarbageInput(t *testing.T) {
	m := testTokenManager()
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseAccess(input)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParse_RejectsNonHMACSigningMethod(t *testing.T) {
	m := testTokenManager()

	// alg=none must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubjectUserID(t *testing.T) {
	id, err := SubjectUserID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = SubjectUserID("abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = SubjectUserID("-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
