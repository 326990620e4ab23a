package aes128_cypher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/otsproject/ots/internal/core/domain"
	"github.com/otsproject/ots/pkg/crypto"
)

const (
	keySize   = 16
	saltSize  = 16
	nonceSize = 12
)

type aes128Cypher struct{}

// NewAES128Cypher returns a domain.SeedCypher encrypting seed phrases with
// AES-128-GCM under a password-derived key. The salt and nonce are generated
// per encryption and prepended to the ciphertext, so the output is
// self-contained.
func NewAES128Cypher() domain.SeedCypher {
	return &aes128Cypher{}
}

func (c *aes128Cypher) Encrypt(phrase, password []byte) ([]byte, error) {
	if len(phrase) <= 0 {
		return nil, domain.ErrSeedMissingPhrase
	}
	if len(password) <= 0 {
		return nil, domain.ErrSeedMissingPassword
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(phrase)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, phrase, nil), nil
}

func (c *aes128Cypher) Decrypt(encryptedPhrase, password []byte) ([]byte, error) {
	if len(password) <= 0 {
		return nil, domain.ErrSeedMissingPassword
	}
	if len(encryptedPhrase) <= saltSize+nonceSize {
		return nil, fmt.Errorf("invalid encrypted phrase size")
	}

	salt := encryptedPhrase[:saltSize]
	nonce := encryptedPhrase[saltSize : saltSize+nonceSize]
	ciphertext := encryptedPhrase[saltSize+nonceSize:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	phrase, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrSeedInvalidPassword
	}
	return phrase, nil
}

func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key := crypto.Keystream(password, salt, keySize)
	defer crypto.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
