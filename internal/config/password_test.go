package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultBcryptCost, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "banana")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: minBcryptCost}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, cfg.VerifyPassword(hash, "wrong password"))
}

func TestVerifyPassword_PepperChangesHash(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: minBcryptCost, Pepper: "side-channel"}
	plain := &PasswordConfig{BcryptCost: minBcryptCost}

	hash, err := peppered.HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword(hash, "secret"))
	assert.False(t, plain.VerifyPassword(hash, "secret"), "verification without the pepper must fail")
}
