package auth

import (
	"testing"

	"taskboard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hasherWithCost(cost int) *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := hasherWithCost(bcrypt.MinCost)

	password := "Sup3rSecret!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := hasherWithCost(customCost)

	hash, err := hasher.Hash("Sup3rSecret!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	// Out-of-range costs are replaced with bcrypt's default.
	assert.Equal(t, bcrypt.DefaultCost, hasherWithCost(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, hasherWithCost(99).cost)
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := hasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("Sup3rSecret!")
	require.NoError(t, err)
	second, err := hasher.Hash("Sup3rSecret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
