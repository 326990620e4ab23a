package domain

import (
	"strings"

	"github.com/otsproject/ots/pkg/crypto"
	"github.com/otsproject/ots/pkg/mnemonic"
	"github.com/otsproject/ots/pkg/wallet"
)

// Seed is the closed set of mnemonic seed types the custody core can hold.
// A seed exclusively owns its KeyStore: it must not be copied, only moved
// between owners, and Wipe must be called by whoever releases it last.
type Seed interface {
	Type() SeedType
	// Values returns the seed's word indices, the language-independent
	// numeric form of the phrase.
	Values() []uint16
	// Phrase re-renders the values as words of the requested language's
	// dictionary.
	Phrase(language SeedLanguage) (string, error)
	// Fingerprint returns a short deterministic digest of the seed's secret
	// material, stable across languages.
	Fingerprint() string
	Network() Network
	// Birthday returns the seed's creation time in unix seconds, estimating
	// it from the height through the given estimator when not explicitly
	// carried. The derived value is never cached.
	Birthday(estimator ChainEstimator) uint64
	// Height is the chain-height view of Birthday, with the same derivation
	// rules.
	Height(estimator ChainEstimator) uint64
	// Key returns a copy of the seed's secret key. It fails while the seed
	// is encrypted.
	Key() (crypto.SecretKey, error)
	// Wallet produces an offline signing wallet from the seed's key and
	// restore height.
	Wallet(estimator ChainEstimator) (*wallet.Wallet, error)
	// Wipe zeroes the secret key and the word indices.
	Wipe()

	sealed()
}

// EncryptableSeed is the capability of seed types whose secret material can
// be toggled between a plaintext and a password-encrypted numeric form.
type EncryptableSeed interface {
	Seed

	// Encrypt transitions the seed to the encrypted form. It fails when the
	// seed is already encrypted.
	Encrypt(password string) error
	// Decrypt restores the plaintext form given the correct password and
	// fails closed otherwise.
	Decrypt(password string) error
	Encrypted() bool
}

// baseSeed carries the state shared by every concrete seed type. dictType
// selects which dictionaries can render the seed.
type baseSeed struct {
	seedType  SeedType
	dictType  SeedType
	values    []uint16
	network   Network
	birthday  uint64
	height    uint64
	key       *KeyStore
	fp        string
	encrypted bool
}

func (s *baseSeed) sealed() {}

func (s *baseSeed) Type() SeedType { return s.seedType }

func (s *baseSeed) Values() []uint16 {
	values := make([]uint16, len(s.values))
	copy(values, s.values)
	return values
}

func (s *baseSeed) Network() Network { return s.network }

func (s *baseSeed) Fingerprint() string { return s.fp }

func (s *baseSeed) Encrypted() bool { return s.encrypted }

func (s *baseSeed) Birthday(estimator ChainEstimator) uint64 {
	if s.birthday != 0 {
		return s.birthday
	}
	if s.height == 0 || estimator == nil {
		return 0
	}
	return estimator.TimestampFromHeight(s.height, s.network)
}

func (s *baseSeed) Height(estimator ChainEstimator) uint64 {
	if s.height != 0 {
		return s.height
	}
	if s.birthday == 0 || estimator == nil {
		return 0
	}
	return estimator.HeightFromTimestamp(s.birthday, s.network)
}

func (s *baseSeed) Key() (crypto.SecretKey, error) {
	if s.encrypted {
		return crypto.SecretKey{}, ErrSeedEncrypted
	}
	return s.key.Key(), nil
}

func (s *baseSeed) Wallet(estimator ChainEstimator) (*wallet.Wallet, error) {
	key, err := s.Key()
	if err != nil {
		return nil, err
	}
	return wallet.NewWallet(wallet.NewWalletArgs{
		Key:            key,
		RestoreHeight:  s.Height(estimator),
		AddressVersion: s.network.AddressVersion(),
	})
}

func (s *baseSeed) Phrase(language SeedLanguage) (string, error) {
	if !language.Supported(s.dictType) {
		return "", ErrLanguageNotSupported
	}
	list, err := language.WordList()
	if err != nil {
		return "", err
	}
	words, err := mnemonic.IndicesToWords(s.values, list)
	if err != nil {
		return "", ErrSeedInvalidIndex
	}
	return strings.Join(words, " "), nil
}

func (s *baseSeed) Wipe() {
	s.key.Zero()
	for i := range s.values {
		s.values[i] = 0
	}
}

// splitPhrase breaks a phrase into words and maps them to indices under the
// given language, validating membership, word count and the trailing
// checksum word.
func splitPhrase(
	phrase string, language SeedLanguage, dictType SeedType, wordCount int,
) ([]uint16, error) {
	if len(phrase) == 0 {
		return nil, ErrSeedMissingPhrase
	}
	if !language.Supported(dictType) {
		return nil, ErrLanguageNotSupported
	}

	words := strings.Fields(phrase)
	if len(words) != wordCount {
		return nil, ErrSeedInvalidWordCount
	}

	list, err := language.WordList()
	if err != nil {
		return nil, err
	}
	indices, err := mnemonic.WordsToIndices(words, list)
	if err != nil {
		return nil, ErrSeedInvalidWord
	}
	if !mnemonic.VerifyChecksumIndex(indices[:wordCount-1], indices[wordCount-1]) {
		return nil, ErrSeedInvalidChecksum
	}
	return indices, nil
}

// checkValues validates the numeric form: length, word list range and
// trailing checksum index. No dictionary lookup is involved.
func checkValues(values []uint16, wordCount int) error {
	if len(values) != wordCount {
		return ErrSeedInvalidWordCount
	}
	for _, v := range values {
		if int(v) >= mnemonic.WordListSize {
			return ErrSeedInvalidIndex
		}
	}
	if !mnemonic.VerifyChecksumIndex(values[:wordCount-1], values[wordCount-1]) {
		return ErrSeedInvalidChecksum
	}
	return nil
}

// englishList returns the dictionary used as the canonical bit packing for
// entropy conversions. The catalog guarantees its presence.
func englishList() *mnemonic.WordList {
	list, err := mnemonic.Dictionary("en")
	if err != nil {
		panic(err)
	}
	return list
}

// entropyToValues packs entropy into the numeric form, appending the
// checksum index.
func entropyToValues(entropy []byte) ([]uint16, error) {
	words, err := mnemonic.EntropyToWords(entropy, englishList())
	if err != nil {
		return nil, ErrSeedInvalidEntropy
	}
	indices, err := mnemonic.WordsToIndices(words, englishList())
	if err != nil {
		return nil, ErrSeedInvalidWord
	}
	return appendChecksum(indices), nil
}

// valuesToEntropy unpacks the data indices back into entropy, validating
// the scheme's embedded checksum bits.
func valuesToEntropy(values []uint16) ([]byte, error) {
	words, err := mnemonic.IndicesToWords(values, englishList())
	if err != nil {
		return nil, ErrSeedInvalidIndex
	}
	entropy, err := mnemonic.WordsToEntropy(words, englishList())
	if err != nil {
		return nil, ErrSeedInvalidChecksum
	}
	return entropy, nil
}

func appendChecksum(indices []uint16) []uint16 {
	return append(indices, indices[mnemonic.ChecksumPosition(indices)])
}
