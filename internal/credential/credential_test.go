package credential_test

import (
	"testing"

	"go-directory/internal/credential"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := credential.NewHasher(bcrypt.MinCost)

	t.Run("round trip", func(t *testing.T) {
		for _, secret := range []string{"password123", "p", "ünïcødé-sécret", ""} {
			hash, err := h.Hash(secret)
			assert.NoError(t, err)
			assert.True(t, h.Verify(secret, hash), secret)
		}
	})

	t.Run("fresh salt per call", func(t *testing.T) {
		a, err := h.Hash("same-secret")
		assert.NoError(t, err)
		b, err := h.Hash("same-secret")
		assert.NoError(t, err)

		assert.NotEqual(t, a, b)
		assert.True(t, h.Verify("same-secret", a))
		assert.True(t, h.Verify("same-secret", b))
	})

	t.Run("mismatch", func(t *testing.T) {
		hash, err := h.Hash("secret-one")
		assert.NoError(t, err)

		assert.False(t, h.Verify("secret-two", hash))
	})

	t.Run("malformed hash", func(t *testing.T) {
		assert.False(t, h.Verify("secret", "not-a-bcrypt-hash"))
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		hash, err := credential.NewHasher(99).Hash("x")
		assert.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		assert.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}
