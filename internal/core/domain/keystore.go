package domain

import "github.com/otsproject/ots/pkg/crypto"

// KeyStore is the opaque holder of exactly one secret scalar. It exists to
// keep the concrete key type out of the public Seed and Wallet interfaces.
// It performs no validation: decoding algorithms are responsible for the
// bytes they hand in.
type KeyStore struct {
	key crypto.SecretKey
}

// NewKeyStore returns an uninitialized key store, a placeholder until a
// decode fills it.
func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

// KeyStoreFromBytes returns a key store owning a copy of the given bytes.
func KeyStoreFromBytes(key [32]byte) *KeyStore {
	return &KeyStore{key: crypto.SecretKey(key)}
}

// KeyStoreFromKey returns a key store owning a copy of the given key.
func KeyStoreFromKey(key crypto.SecretKey) *KeyStore {
	return &KeyStore{key: key}
}

// Key returns a copy of the stored secret key.
func (s *KeyStore) Key() crypto.SecretKey {
	return s.key
}

// IsZero reports whether the store still holds the zero placeholder.
func (s *KeyStore) IsZero() bool {
	return s.key.IsZero()
}

// Zero wipes the stored key bytes.
func (s *KeyStore) Zero() {
	crypto.Zero(s.key[:])
}
