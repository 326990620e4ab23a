package domain

import (
	"bytes"
	"crypto/rand"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/otsproject/ots/pkg/crypto"
)

// PolyseedWordCount is 15 data words plus the trailing checksum word. Each
// data word carries 11 bits: 10 bits of quantized birthday, 5 feature bits
// and 150 bits of secret.
const PolyseedWordCount = 16

const (
	polyseedSecretSize   = 19 // 150 bits, low 2 bits of the last byte unused
	polyseedBirthdayBits = 10
	polyseedFeatureBits  = 5

	// polyseedEpoch is 2021-11-01 00:00:00 UTC; birthdays are stored as
	// months elapsed since then.
	polyseedEpoch    = 1635768000
	polyseedTimeStep = 2629746

	// Polyseed birthdays are exact, so height estimation backs off a fixed
	// 30-day margin first.
	polyseedHeightMargin = 30 * 24 * 3600

	polyseedFeatureEncrypted = 0x01

	polyseedKeySalt  = "ots polyseed key"
	polyseedMaskSalt = "ots polyseed keystream"
)

// Polyseed is the 16-word seed carrying its own exact birthday and feature
// flags, including the encrypted state, inside the phrase.
type Polyseed struct {
	baseSeed

	// Hash of the password of the active encrypt cycle; nil for seeds
	// decoded from an already encrypted phrase.
	passwordHash []byte
}

type DecodePolyseedArgs struct {
	Phrase   string
	Language SeedLanguage
	Network  Network
}

func (a DecodePolyseedArgs) validate() error {
	if len(a.Phrase) == 0 {
		return ErrSeedMissingPhrase
	}
	return nil
}

// DecodePolyseed imports a polyseed from its phrase. The encrypted state is
// detected from the feature bits.
func DecodePolyseed(args DecodePolyseedArgs) (*Polyseed, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	values, err := splitPhrase(
		args.Phrase, args.Language, SeedTypePolyseed, PolyseedWordCount,
	)
	if err != nil {
		return nil, err
	}
	return polyseedFromIndices(values, args.Network)
}

type PolyseedFromValuesArgs struct {
	Values  []uint16
	Network Network
}

// PolyseedFromValues imports a polyseed already in numeric form.
func PolyseedFromValues(args PolyseedFromValuesArgs) (*Polyseed, error) {
	if err := checkValues(args.Values, PolyseedWordCount); err != nil {
		return nil, err
	}
	values := make([]uint16, PolyseedWordCount)
	copy(values, args.Values)
	return polyseedFromIndices(values, args.Network)
}

type CreatePolyseedArgs struct {
	// Birthday in unix seconds; defaults to now. It is quantized to the
	// scheme's month-sized steps before being embedded.
	Birthday uint64
	Network  Network
}

// CreatePolyseed mints a fresh polyseed from the OS random source.
func CreatePolyseed(args CreatePolyseedArgs) (*Polyseed, error) {
	var secret [polyseedSecretSize]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return nil, err
	}
	secret[polyseedSecretSize-1] &= 0xfc

	birthday := args.Birthday
	if birthday == 0 {
		birthday = uint64(time.Now().Unix())
	}
	quantum := birthdayQuantum(birthday)

	values := appendChecksum(packPolyseed(quantum, 0, secret))
	key := crypto.KDF(secret[:], []byte(polyseedKeySalt))
	crypto.Zero(secret[:])

	return &Polyseed{baseSeed: baseSeed{
		seedType: SeedTypePolyseed,
		dictType: SeedTypePolyseed,
		values:   values,
		network:  args.Network,
		birthday: polyseedEpoch + uint64(quantum)*polyseedTimeStep,
		key:      KeyStoreFromKey(key),
		fp:       crypto.Fingerprint(key[:]),
	}}, nil
}

// Height backs off the safety margin before estimating, since the embedded
// birthday marks the exact creation time, not an approximation.
func (s *Polyseed) Height(estimator ChainEstimator) uint64 {
	if s.height != 0 {
		return s.height
	}
	birthday := s.birthday
	if birthday == 0 || estimator == nil {
		return 0
	}
	if birthday > polyseedHeightMargin {
		birthday -= polyseedHeightMargin
	} else {
		birthday = 0
	}
	return estimator.HeightFromTimestamp(birthday, s.network)
}

// Encrypt masks the embedded secret bits with a password-derived keystream
// and flags the encrypted state in the feature bits.
func (s *Polyseed) Encrypt(password string) error {
	if s.encrypted {
		return ErrSeedAlreadyEncrypted
	}
	if len(password) == 0 {
		return ErrSeedMissingPassword
	}

	quantum, features, secret := unpackPolyseed(s.values[:PolyseedWordCount-1])
	maskSecret(&secret, password)
	features |= polyseedFeatureEncrypted

	s.values = appendChecksum(packPolyseed(quantum, features, secret))
	s.passwordHash = btcutil.Hash160([]byte(password))
	s.key.Zero()
	s.encrypted = true
	s.fp = crypto.Fingerprint(secret[:])
	crypto.Zero(secret[:])
	return nil
}

// Decrypt unmasks the secret bits and clears the encrypted feature flag.
// Within the encrypt cycle of this object the password is checked against
// its hash; a freshly decoded encrypted polyseed is unmasked as-is.
func (s *Polyseed) Decrypt(password string) error {
	if !s.encrypted {
		return ErrSeedNotEncrypted
	}
	if len(password) == 0 {
		return ErrSeedMissingPassword
	}
	if s.passwordHash != nil &&
		!bytes.Equal(s.passwordHash, btcutil.Hash160([]byte(password))) {
		return ErrSeedInvalidPassword
	}

	quantum, features, secret := unpackPolyseed(s.values[:PolyseedWordCount-1])
	maskSecret(&secret, password)
	features &^= polyseedFeatureEncrypted

	key := crypto.KDF(secret[:], []byte(polyseedKeySalt))
	s.values = appendChecksum(packPolyseed(quantum, features, secret))
	s.key = KeyStoreFromKey(key)
	s.encrypted = false
	s.passwordHash = nil
	s.fp = crypto.Fingerprint(key[:])
	crypto.Zero(secret[:])
	return nil
}

func polyseedFromIndices(values []uint16, network Network) (*Polyseed, error) {
	quantum, features, secret := unpackPolyseed(values[:PolyseedWordCount-1])
	if features&^polyseedFeatureEncrypted != 0 {
		return nil, ErrSeedInvalidFeatures
	}
	encrypted := features&polyseedFeatureEncrypted != 0

	seed := &Polyseed{baseSeed: baseSeed{
		seedType:  SeedTypePolyseed,
		dictType:  SeedTypePolyseed,
		values:    values,
		network:   network,
		birthday:  polyseedEpoch + uint64(quantum)*polyseedTimeStep,
		encrypted: encrypted,
	}}
	if encrypted {
		seed.key = NewKeyStore()
		seed.fp = crypto.Fingerprint(secret[:])
	} else {
		key := crypto.KDF(secret[:], []byte(polyseedKeySalt))
		seed.key = KeyStoreFromKey(key)
		seed.fp = crypto.Fingerprint(key[:])
	}
	crypto.Zero(secret[:])
	return seed, nil
}

func birthdayQuantum(birthday uint64) uint16 {
	if birthday <= polyseedEpoch {
		return 0
	}
	quantum := (birthday - polyseedEpoch) / polyseedTimeStep
	if quantum > 1<<polyseedBirthdayBits-1 {
		quantum = 1<<polyseedBirthdayBits - 1
	}
	return uint16(quantum)
}

func maskSecret(secret *[polyseedSecretSize]byte, password string) {
	mask := crypto.Keystream(
		[]byte(password), []byte(polyseedMaskSalt), polyseedSecretSize,
	)
	mask[polyseedSecretSize-1] &= 0xfc
	for i := range secret {
		secret[i] ^= mask[i]
	}
	crypto.Zero(mask)
}

// packPolyseed serializes birthday, features and secret into 15 data
// indices of 11 bits each, most significant bit first.
func packPolyseed(
	quantum uint16, features byte, secret [polyseedSecretSize]byte,
) []uint16 {
	w := &bitWriter{}
	w.write(uint64(quantum), polyseedBirthdayBits)
	w.write(uint64(features), polyseedFeatureBits)
	for i := 0; i < polyseedSecretSize-1; i++ {
		w.write(uint64(secret[i]), 8)
	}
	w.write(uint64(secret[polyseedSecretSize-1]>>2), 6)
	return w.words
}

func unpackPolyseed(
	indices []uint16,
) (quantum uint16, features byte, secret [polyseedSecretSize]byte) {
	r := &bitReader{words: indices}
	quantum = uint16(r.read(polyseedBirthdayBits))
	features = byte(r.read(polyseedFeatureBits))
	for i := 0; i < polyseedSecretSize-1; i++ {
		secret[i] = byte(r.read(8))
	}
	secret[polyseedSecretSize-1] = byte(r.read(6)) << 2
	return
}

type bitWriter struct {
	words []uint16
	cur   uint32
	n     uint
}

func (w *bitWriter) write(v uint64, bits uint) {
	for i := bits; i > 0; i-- {
		w.cur = w.cur<<1 | uint32(v>>(i-1))&1
		w.n++
		if w.n == 11 {
			w.words = append(w.words, uint16(w.cur))
			w.cur, w.n = 0, 0
		}
	}
}

type bitReader struct {
	words []uint16
	pos   uint
}

func (r *bitReader) read(bits uint) uint64 {
	var out uint64
	for i := uint(0); i < bits; i++ {
		word := r.words[r.pos/11]
		shift := 10 - r.pos%11
		out = out<<1 | uint64(word>>shift)&1
		r.pos++
	}
	return out
}

var (
	_ EncryptableSeed = (*MoneroSeed)(nil)
	_ EncryptableSeed = (*Polyseed)(nil)
	_ Seed            = (*LegacySeed)(nil)
)
