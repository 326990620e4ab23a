package domain

import "time"

// SeedRecord is the persisted form of a registered seed: enough metadata to
// list known seeds across sessions plus the phrase itself, ciphered with a
// password so no plaintext secret material ever touches storage.
type SeedRecord struct {
	Fingerprint string
	Label       string
	Network     Network
	Birthday    uint64
	Height      uint64
	// LanguageCode of the phrase the ciphertext decrypts to.
	LanguageCode string
	// Encrypted marks the phrase itself as password-scrambled, on top of the
	// record ciphering. A restored seed must come back in the same state.
	Encrypted bool
	// EncryptedPhrase is the SeedCypher ciphertext of the seed phrase.
	EncryptedPhrase []byte
	CreatedAt       time.Time
}

func (r *SeedRecord) Validate() error {
	if len(r.Fingerprint) == 0 || len(r.EncryptedPhrase) == 0 ||
		len(r.LanguageCode) == 0 {
		return ErrSeedMissingPhrase
	}
	return nil
}
