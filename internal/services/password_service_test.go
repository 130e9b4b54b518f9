package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	hash, err := ps.HashPassword("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, "secret12", hash)

	assert.True(t, ps.ComparePassword("secret12", hash))
	assert.False(t, ps.ComparePassword("wrong-pass", hash))
	assert.False(t, ps.ComparePassword("secret12", "not-a-hash"))
}

func TestHashPasswordValidation(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	_, err := ps.HashPassword("")
	assert.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = ps.HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = ps.HashPassword(strings.Repeat("x", MaxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewPasswordServiceClampsCost(t *testing.T) {
	// An out-of-range cost must not break hashing.
	ps := NewPasswordService(1000)
	hash, err := ps.HashPassword("secret12")
	require.NoError(t, err)
	assert.True(t, ps.ComparePassword("secret12", hash))
}
