package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "user-1", "test-agent/1.0")
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "test-agent/1.0", claims.UserAgent)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), "user-1", "test-agent/1.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")
	assert.Error(t, err)
}
