package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Horarios-api/internal/infrastructure/crypto"
)

func TestBcryptHasher_HashVerify(t *testing.T) {
	h := crypto.NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)
	assert.True(t, h.Verify("secreto123", hash))
	assert.False(t, h.Verify("otro", hash))
	assert.False(t, h.Verify("secreto123", "no-es-un-hash"))
}
