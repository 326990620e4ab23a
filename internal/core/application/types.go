package application

import (
	"github.com/otsproject/ots/internal/core/domain"
)

// SeedInfo is the read-model of a registered seed, safe to display: it never
// carries key material or the phrase itself.
type SeedInfo struct {
	Fingerprint string
	Type        string
	Network     string
	Encrypted   bool
	Birthday    uint64
	Height      uint64
	// Address is the primary address of the seed's wallet, empty while the
	// seed is encrypted.
	Address string
	// KeyHandle references the seed's spend key in the key jar, 0 while the
	// seed is encrypted.
	KeyHandle domain.KeyHandle
}

// KeyInfo is the read-model of a custodied key.
type KeyInfo struct {
	Handle domain.KeyHandle
	Label  string
	// SeedFingerprint links the key back to its seed, empty for standalone
	// keys.
	SeedFingerprint string
}

// RecordInfo is the read-model of a persisted seed record. The ciphertext
// itself is never exposed.
type RecordInfo struct {
	Fingerprint  string
	Label        string
	Network      string
	Birthday     uint64
	Height       uint64
	LanguageCode string
	Encrypted    bool
	CreatedAt    int64
}

type GenerateSeedArgs struct {
	// Type is the seed scheme name, "monero" or "polyseed".
	Type     string
	Birthday uint64
	Height   uint64
}

type ImportSeedArgs struct {
	Phrase string
	// LanguageCode of the phrase. Empty means the scheme's default language.
	LanguageCode string
	// Encrypted marks a 25-word phrase as password-scrambled. The encrypted
	// state of a polyseed is carried by the phrase itself.
	Encrypted bool
	Birthday  uint64
	Height    uint64
}
