// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/config"
	"github.com/carterperez-dev/coursehub/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		PublicKeyPath:      publicPath,
		AccessTokenExpire:  expire,
		RefreshTokenExpire: 168 * time.Hour,
		Issuer:             "coursehub",
		Audience:           "coursehub-api",
	})
	require.NoError(t, err)

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:       "u1",
		Email:        "ada@example.com",
		Role:         "student",
		TokenVersion: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u1",
		Email:  "ada@example.com",
		Role:   "student",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), signed)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	_, err := manager.VerifyAccessToken(
		context.Background(),
		"not.a.token",
	)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessTokenRejectsForeignSigner(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	other := newTestManager(t, time.Hour)

	signed, err := other.CreateAccessToken(AccessTokenClaims{
		UserID: "u1",
		Email:  "ada@example.com",
		Role:   "student",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), signed)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRefreshTokenHashing(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	data, err := manager.CreateRefreshToken("u1", "")
	require.NoError(t, err)

	assert.NotEmpty(t, data.FamilyID)
	assert.True(t, manager.VerifyRefreshTokenHash(data.Token, data.Hash))
	assert.False(t, manager.VerifyRefreshTokenHash("tampered", data.Hash))
}
