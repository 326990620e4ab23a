package domain

import (
	"context"

	"github.com/otsproject/ots/pkg/crypto"
)

// KeyHandle grants indirect, revocable access to a custodied secret key.
// Handle 0 is reserved and never issued.
type KeyHandle uint64

// SeedHandle grants indirect access to a registered seed.
// Handle 0 is reserved and never issued.
type SeedHandle uint64

// KeyJar is a thread-safe, handle-indexed store of secret keys, independent
// of seed semantics. It exclusively owns the key bytes of its entries: keys
// are copied in, never aliased.
type KeyJar interface {
	// Store copies the key into the jar and returns a fresh handle for it.
	// Storing the same (key, label) pair twice returns the existing handle
	// without duplicating the entry.
	Store(key crypto.SecretKey, label string) (KeyHandle, error)
	// StoreForSeed is Store with a weak back-reference to the owning seed.
	StoreForSeed(key crypto.SecretKey, label string, seed Seed) (KeyHandle, error)
	// Use runs fn with the stored key while holding the jar lock, so the
	// key cannot be removed or zeroed mid-use. The key must not be retained
	// past fn's return.
	Use(handle KeyHandle, fn func(key crypto.SecretKey) error) error
	// Remove erases and zeroes the entry, reporting whether it existed.
	Remove(handle KeyHandle) bool
	Has(handle KeyHandle) bool
	// Seed returns the seed back-reference of the entry, if any.
	Seed(handle KeyHandle) (Seed, error)
	// Label returns the label of the entry.
	Label(handle KeyHandle) (string, error)
	Count() int
}

// SeedJar is a handle- and fingerprint-indexed store of seeds. Ownership of
// registered seeds is shared with whichever external holder also references
// them.
type SeedJar interface {
	// Store registers the seed and returns its handle. Registering the same
	// seed object again returns the existing handle.
	Store(seed Seed) (SeedHandle, error)
	Get(handle SeedHandle) (Seed, error)
	// GetByFingerprint returns the first-registered seed carrying the given
	// fingerprint.
	GetByFingerprint(fingerprint string) (Seed, error)
	Has(handle SeedHandle) bool
	HasFingerprint(fingerprint string) bool
	// Remove drops the jar's reference to the seed, reporting whether it
	// was registered. External holders keep theirs.
	Remove(handle SeedHandle) bool
	// List returns a snapshot of all registered seeds in registration order.
	List() []Seed
}

// ChainEstimator converts between the two time coordinates of a seed's
// creation point: wall-clock seconds and chain height.
type ChainEstimator interface {
	HeightFromTimestamp(timestamp uint64, network Network) uint64
	TimestampFromHeight(height uint64, network Network) uint64
}

// SeedCypher defines the methods a cypher must implement to encrypt or
// decrypt a seed phrase with a password for storage at rest.
type SeedCypher interface {
	Encrypt(phrase, password []byte) ([]byte, error)
	Decrypt(encryptedPhrase, password []byte) ([]byte, error)
}

// SeedRecordRepository persists encrypted seed records across sessions.
type SeedRecordRepository interface {
	AddRecord(ctx context.Context, record *SeedRecord) error
	GetRecord(ctx context.Context, fingerprint string) (*SeedRecord, error)
	ListRecords(ctx context.Context) ([]SeedRecord, error)
	DeleteRecord(ctx context.Context, fingerprint string) error
	Close()
}
