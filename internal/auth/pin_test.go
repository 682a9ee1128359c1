package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPINPlainText(t *testing.T) {
	// Seed data stores the default PIN in plain text until first change.
	assert.True(t, VerifyPIN("1234", "1234"))
	assert.False(t, VerifyPIN("1234", "4321"))
	assert.False(t, VerifyPIN("", "1234"))
}

func TestVerifyPINBcrypt(t *testing.T) {
	hash, err := HashPIN("5678")
	require.NoError(t, err)
	require.NotEqual(t, "5678", hash)

	assert.True(t, VerifyPIN(hash, "5678"))
	assert.False(t, VerifyPIN(hash, "5679"))
}

func TestHashPINProducesDistinctHashes(t *testing.T) {
	first, err := HashPIN("1234")
	require.NoError(t, err)
	second, err := HashPIN("1234")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "bcrypt salts every hash")
}
