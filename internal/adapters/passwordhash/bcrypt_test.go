package passwordhash

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// randomPlaintext returns a printable ASCII string of length n.
func randomPlaintext(t *testing.T, n int) string {
	t.Helper()
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, big.NewInt(94))
		require.NoError(t, err)
		out[i] = byte(33 + v.Int64())
	}
	return string(out)
}

func TestBcrypt_RoundTrip(t *testing.T) {
	h := New(bcrypt.MinCost)

	for n := 1; n <= 128; n++ {
		plain := randomPlaintext(t, n)
		digest, err := h.Hash(plain)
		require.NoError(t, err)

		assert.NotEqual(t, plain, digest)
		assert.True(t, h.Verify(plain, digest), "len=%d must verify", n)
		assert.False(t, h.Verify(plain+"x", digest), "len=%d appended byte must not verify", n)

		if other := randomPlaintext(t, n); other != plain {
			assert.False(t, h.Verify(other, digest), "len=%d different plaintext must not verify", n)
		}
	}
}

func TestBcrypt_LongInputsDifferPastByte72(t *testing.T) {
	h := New(bcrypt.MinCost)
	prefix := randomPlaintext(t, 72)

	digest, err := h.Hash(prefix + "a")
	require.NoError(t, err)

	assert.True(t, h.Verify(prefix+"a", digest))
	assert.False(t, h.Verify(prefix+"b", digest))
	assert.False(t, h.Verify(prefix, digest))
}

func TestBcrypt_SaltedDigests(t *testing.T) {
	h := New(bcrypt.MinCost)

	a, err := h.Hash("secret123")
	require.NoError(t, err)
	b, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same plaintext must differ")
	assert.True(t, h.Verify("secret123", a))
	assert.True(t, h.Verify("secret123", b))
}

func TestBcrypt_VerifyNeverPanicsOnGarbage(t *testing.T) {
	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "not-a-bcrypt-digest"))
	assert.NotPanics(t, func() { h.Burn("secret123") })
}

func TestNew_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultCost, New(0).Cost())
	assert.Equal(t, DefaultCost, New(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, bcrypt.MinCost, New(bcrypt.MinCost).Cost())

	h := New(bcrypt.MinCost)
	digest, err := h.Hash("secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestFallbackDummy_IsComparable(t *testing.T) {
	cost, err := bcrypt.Cost([]byte(fallbackDummy))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	err = bcrypt.CompareHashAndPassword([]byte(fallbackDummy), []byte("batisuivi-dummy-password"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword, "a malformed digest would skip the hashing work")
}
