// Package cryptox hashes account passwords for the server's user store.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/planner/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// Argon2id parameters. Changing them invalidates stored hashes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword returns a fresh random salt and the derived key for password.
func HashPassword(password []byte) (salt []byte, hash []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, DeriveKey(password, salt)
}

// VerifyPassword reports whether password derives to hash under salt.
// The comparison is constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
