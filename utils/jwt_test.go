package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tokens must be signed with the secret handed over from config, not the
// built-in development default.
func TestConfiguredSecretSignsTokens(t *testing.T) {
	SetJWTSecret("SuperSecretFromConfig")

	token, err := GenerateToken(7, "admin")
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "BrewBlissCafe", claims.Issuer)

	// a token minted under the configured secret must not verify once
	// the secret differs, proving the default is no longer in play
	SetJWTSecret("ADifferentSecret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestSetJWTSecretIgnoresEmpty(t *testing.T) {
	SetJWTSecret("KeepMe")
	token, err := GenerateToken(1, "staff")
	assert.NoError(t, err)

	// an unset JWT_SECRET must not wipe the active secret
	SetJWTSecret("")
	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}
