package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SecretKeySize is the byte length of a secret scalar.
	SecretKeySize = 32
	// FingerprintSize is the number of hex characters of a key fingerprint.
	FingerprintSize = 6

	kdfIterations = 10000
)

// SecretKey is a 32-byte secret scalar. It is a plain value type so that
// copies are explicit and can be wiped independently.
type SecretKey [SecretKeySize]byte

// NewSecretKey returns a fresh random secret key drawn from the OS
// cryptographically secure random source.
func NewSecretKey() (SecretKey, error) {
	var key SecretKey
	if _, err := rand.Read(key[:]); err != nil {
		return SecretKey{}, err
	}
	return key, nil
}

// SecretKeyFromHash maps arbitrary data to a secret scalar by hashing it
// with blake2b-256.
func SecretKeyFromHash(data []byte) SecretKey {
	return SecretKey(blake2b.Sum256(data))
}

// IsZero returns whether the key holds only zero bytes.
func (k SecretKey) IsZero() bool {
	return k == SecretKey{}
}

// Fingerprint returns a short deterministic digest of the given secret
// material, rendered as uppercase hex. It is meant for display and lookup,
// never as a substitute for the secret itself.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return strings.ToUpper(hex.EncodeToString(sum[:FingerprintSize/2]))
}

// Keystream derives a deterministic keystream of the given size from a
// password and salt with PBKDF2-SHA512.
func Keystream(password, salt []byte, size int) []byte {
	return pbkdf2.Key(password, salt, kdfIterations, size, sha512.New)
}

// KDF stretches arbitrary secret material into a secret scalar with
// PBKDF2-SHA512.
func KDF(secret, salt []byte) SecretKey {
	var key SecretKey
	copy(key[:], pbkdf2.Key(secret, salt, kdfIterations, SecretKeySize, sha512.New))
	return key
}

// Zero overwrites the given buffer with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
