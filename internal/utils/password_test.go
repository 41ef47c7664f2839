package utils_test

import (
	"testing"

	"github.com/kasirapp/user-api/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, utils.CheckPasswordHash("password123", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))

	// Salted: the same input never hashes to the same value twice.
	hash2, err := utils.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
