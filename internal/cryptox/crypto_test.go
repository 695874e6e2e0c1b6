package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt-value")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	require.Len(t, key1, KeySize)
	assert.True(t, bytes.Equal(key1, key2))
}

func TestDeriveKey_DifferentSaltDifferentKey(t *testing.T) {
	password := []byte("secret-password")

	a := DeriveKey(password, []byte("salt-a-salt-a-00"))
	b := DeriveKey(password, []byte("salt-b-salt-b-00"))

	assert.False(t, bytes.Equal(a, b))
}

func TestHashAndVerifyPassword(t *testing.T) {
	salt, hash := HashPassword([]byte("correct horse"))
	require.Len(t, salt, SaltSize)
	require.Len(t, hash, KeySize)

	assert.True(t, VerifyPassword([]byte("correct horse"), salt, hash))
	assert.False(t, VerifyPassword([]byte("battery staple"), salt, hash))
}
