package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, svc.Verify(hash, "Password123!"))
	assert.False(t, svc.Verify(hash, "Password123"))
	assert.False(t, svc.Verify("not-a-hash", "Password123!"))
}

func TestLegacyHasher_Deterministic(t *testing.T) {
	h := NewLegacyHasher()

	a, err := h.Hash("Password123!")
	require.NoError(t, err)
	b, err := h.Hash("Password123!")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := h.Hash("Password123?")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	assert.True(t, h.Verify(a, "Password123!"))
	assert.False(t, h.Verify(a, "Password123?"))
}

func TestLegacyHasher_DigestShape(t *testing.T) {
	h := NewLegacyHasher()

	// Empty input hashes to zero plus a zero length.
	digest, err := h.Hash("")
	require.NoError(t, err)
	assert.Equal(t, "00", digest)

	// A single character is its code point in base 36 plus length 1.
	digest, err = h.Hash("a")
	require.NoError(t, err)
	assert.Equal(t, "2p1", digest) // 'a' is 97, base36 "2p"

	// Surrogate pairs count as two UTF-16 units.
	digest, err = h.Hash("\U0001F600")
	require.NoError(t, err)
	assert.Equal(t, "2", digest[len(digest)-1:])
}

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", a)
	assert.NotEqual(t, a, b)
}
