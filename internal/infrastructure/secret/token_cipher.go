// Package secret seals integration tokens before they are written to the
// database.
package secret

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealedPrefix marks values produced by TokenCipher.Seal
const sealedPrefix = "xc1:"

var (
	// ErrInvalidKey is returned when the configured key is not 32 bytes of base64
	ErrInvalidKey = errors.New("secret: token encryption key must be 32 bytes, base64 encoded")
	// ErrMalformedToken is returned when a sealed value cannot be decoded or authenticated
	ErrMalformedToken = errors.New("secret: malformed sealed token")
)

// TokenCipher seals tokens with XChaCha20-Poly1305. Each value gets a random
// 24-byte nonce, stored in front of the ciphertext.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher creates a cipher from a base64 encoded 32-byte key
func NewTokenCipher(encodedKey string) (*TokenCipher, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encodedKey))
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	return &TokenCipher{aead: aead}, nil
}

// Seal encrypts plaintext. The empty string stays empty.
func (c *TokenCipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secret: read nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. Values without the sealed prefix
// were stored before a key was configured and are returned unchanged.
func (c *TokenCipher) Open(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(raw) < c.aead.NonceSize() {
		return "", ErrMalformedToken
	}
	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrMalformedToken
	}
	return string(plaintext), nil
}

// GenerateKey returns a fresh base64 encoded key suitable for NewTokenCipher
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
