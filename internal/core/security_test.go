// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("Secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("secret123", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, needsRehash(hash))
}

func TestLegacyBcryptHashIsRehashed(t *testing.T) {
	t.Parallel()

	legacy, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := string(legacy)

	check, err := CheckPassword("Secret123", &stored)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.True(t, strings.HasPrefix(check.Rehash, "$argon2id$"))

	check, err = CheckPassword("wrong", &stored)
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Empty(t, check.Rehash)
}

func TestCheckPasswordCurrentHashNeedsNoRehash(t *testing.T) {
	t.Parallel()

	stored, err := HashPassword("Secret123")
	require.NoError(t, err)

	check, err := CheckPassword("Secret123", &stored)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Rehash)
}

func TestCheckPasswordOutdatedParamsAreRehashed(t *testing.T) {
	t.Parallel()

	old := argon2Params{memory: 32 * 1024, iterations: 2, parallelism: 2, keyLen: 32}
	salt := []byte("0123456789abcdef")
	stored := old.encode(salt, old.derive("Secret123", salt))

	check, err := CheckPassword("Secret123", &stored)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	require.NotEmpty(t, check.Rehash)
	assert.False(t, needsRehash(check.Rehash))
}

func TestCheckPasswordWithoutHash(t *testing.T) {
	t.Parallel()

	check, err := CheckPassword("anything", nil)
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Empty(t, check.Rehash)

	empty := ""
	check, err = CheckPassword("glowguard-decoy-password", &empty)
	require.NoError(t, err)
	assert.False(t, check.Valid)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("x", "$argon2id$broken")
	assert.ErrorIs(t, err, ErrMalformedHash)

	_, err = VerifyPassword("x", "$scrypt$v=1$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrMalformedHash)

	_, err = VerifyPassword("x", "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrMalformedHash)
}
