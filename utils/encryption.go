package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
)

// TransactionCipher seals UPI transaction references before they are written
// to the booking audit table. AES-256-GCM with a random nonce prepended to
// the ciphertext, base64 on the wire.
type TransactionCipher struct {
	aead cipher.AEAD
}

// NewTransactionCipher reads ENCRYPTION_KEY (base64 or raw) and resolves the
// AEAD once, so sealing a reference never touches the environment again.
func NewTransactionCipher() (*TransactionCipher, error) {
	raw := os.Getenv("ENCRYPTION_KEY")
	if raw == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY environment variable is not set")
	}

	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Not base64, treat the value as the raw key bytes.
		key = []byte(raw)
	}
	return NewTransactionCipherWithKey(key)
}

// NewTransactionCipherWithKey builds a cipher from an explicit 32-byte key.
func NewTransactionCipherWithKey(key []byte) (*TransactionCipher, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("transaction cipher key must be 32 bytes for AES-256, got %d bytes", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &TransactionCipher{aead: aead}, nil
}

// Seal encrypts a transaction reference. Empty references pass through.
func (tc *TransactionCipher) Seal(reference string) (string, error) {
	if reference == "" {
		return "", nil
	}

	nonce := make([]byte, tc.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := tc.aead.Seal(nonce, nonce, []byte(reference), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a sealed transaction reference.
func (tc *TransactionCipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	nonceSize := tc.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("sealed reference too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := tc.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt transaction reference: %w", err)
	}

	return string(plaintext), nil
}
