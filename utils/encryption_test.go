package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCipherSealOpen(t *testing.T) {
	cipher, err := NewTransactionCipherWithKey([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	sealed, err := cipher.Seal("TXN12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "TXN12345678", sealed)

	plain, err := cipher.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "TXN12345678", plain)

	// Empty references pass through unsealed.
	sealed, err = cipher.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)
}

func TestTransactionCipherRejectsBadKey(t *testing.T) {
	_, err := NewTransactionCipherWithKey([]byte("short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestTransactionCipherOpenRejectsTampering(t *testing.T) {
	cipher, err := NewTransactionCipherWithKey([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	_, err = cipher.Open("bm90IGEgc2VhbGVkIHJlZmVyZW5jZQ==")
	require.Error(t, err)

	other, err := NewTransactionCipherWithKey([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	sealed, err := cipher.Seal("TXN12345678")
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.Error(t, err)
}

func TestNewTransactionCipherFromEnv(t *testing.T) {
	// Not valid base64, so the value is taken as the raw 32-byte key.
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcde!")
	cipher, err := NewTransactionCipher()
	require.NoError(t, err)

	sealed, err := cipher.Seal("TXN12345678")
	require.NoError(t, err)
	plain, err := cipher.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "TXN12345678", plain)

	t.Setenv("ENCRYPTION_KEY", "")
	_, err = NewTransactionCipher()
	assert.Error(t, err)
}
