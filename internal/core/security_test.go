// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafeHandlesMissingUser(t *testing.T) {
	ok, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	hash, err := HashPassword("real password")
	require.NoError(t, err)

	ok, err = VerifyPasswordTimingSafe("real password", &hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenHashing(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	hash := HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash("other", hash))
}
