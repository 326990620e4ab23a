package domain

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/otsproject/ots/pkg/crypto"
)

// MoneroSeedWordCount is 24 data words plus the trailing checksum word.
const MoneroSeedWordCount = 25

// moneroSeedSalt parametrizes the phrase-encryption keystream.
const moneroSeedSalt = "ots monero seed keystream"

// MoneroSeed is the 25-word seed whose data words carry the secret key
// bytes directly.
type MoneroSeed struct {
	baseSeed

	// Hash of the password of the active encrypt cycle, kept only while
	// this in-memory object stays alive. Seeds decoded from an already
	// encrypted phrase have none.
	passwordHash []byte
}

type DecodeMoneroSeedArgs struct {
	Phrase    string
	Language  SeedLanguage
	Encrypted bool
	Birthday  uint64
	Height    uint64
	Network   Network
}

func (a DecodeMoneroSeedArgs) validate() error {
	if len(a.Phrase) == 0 {
		return ErrSeedMissingPhrase
	}
	return nil
}

// DecodeMoneroSeed imports a seed from its phrase. An encrypted phrase is
// decodable without the password; only key derivation requires decrypting
// first.
func DecodeMoneroSeed(args DecodeMoneroSeedArgs) (*MoneroSeed, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	values, err := splitPhrase(
		args.Phrase, args.Language, SeedTypeMonero, MoneroSeedWordCount,
	)
	if err != nil {
		return nil, err
	}
	return moneroSeedFromIndices(
		values, args.Encrypted, args.Birthday, args.Height, args.Network,
	)
}

type MoneroSeedFromValuesArgs struct {
	Values    []uint16
	Encrypted bool
	Birthday  uint64
	Height    uint64
	Network   Network
}

// MoneroSeedFromValues imports a seed already in numeric form.
func MoneroSeedFromValues(args MoneroSeedFromValuesArgs) (*MoneroSeed, error) {
	if err := checkValues(args.Values, MoneroSeedWordCount); err != nil {
		return nil, err
	}
	values := make([]uint16, MoneroSeedWordCount)
	copy(values, args.Values)
	return moneroSeedFromIndices(
		values, args.Encrypted, args.Birthday, args.Height, args.Network,
	)
}

type GenerateMoneroSeedArgs struct {
	Birthday uint64
	Height   uint64
	Network  Network
}

// GenerateMoneroSeed mints a fresh seed from the OS random source. The
// birthday defaults to now.
func GenerateMoneroSeed(args GenerateMoneroSeedArgs) (*MoneroSeed, error) {
	key, err := crypto.NewSecretKey()
	if err != nil {
		return nil, err
	}
	return newMoneroSeed(key, args)
}

type CreateMoneroSeedArgs struct {
	// Data is hashed to the secret scalar the seed is built from.
	Data     []byte
	Birthday uint64
	Height   uint64
	Network  Network
}

func (a CreateMoneroSeedArgs) validate() error {
	if len(a.Data) == 0 {
		return ErrSeedInvalidEntropy
	}
	return nil
}

// CreateMoneroSeed mints a seed deterministically from caller-provided
// entropy via hash-to-scalar.
func CreateMoneroSeed(args CreateMoneroSeedArgs) (*MoneroSeed, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	key := crypto.SecretKeyFromHash(args.Data)
	return newMoneroSeed(key, GenerateMoneroSeedArgs{
		Birthday: args.Birthday,
		Height:   args.Height,
		Network:  args.Network,
	})
}

// Encrypt transforms the seed's numeric form with a password-derived
// keystream. The phrase stays storable and decodable while encrypted.
func (s *MoneroSeed) Encrypt(password string) error {
	if s.encrypted {
		return ErrSeedAlreadyEncrypted
	}
	if len(password) == 0 {
		return ErrSeedMissingPassword
	}

	key := s.key.Key()
	cipher := maskKey(key, password)
	values, err := entropyToValues(cipher[:])
	if err != nil {
		return err
	}

	s.values = values
	s.passwordHash = btcutil.Hash160([]byte(password))
	s.key.Zero()
	s.encrypted = true
	s.fp = crypto.Fingerprint(cipher[:])
	crypto.Zero(cipher[:])
	return nil
}

// Decrypt restores the plaintext numeric form. Within the encrypt cycle of
// this object the password is checked against its hash; for seeds decoded
// from an already encrypted phrase the keystream is simply inverted, like
// the reference scheme's passphrase offset, and a wrong password surfaces
// as a key no wallet recognizes.
func (s *MoneroSeed) Decrypt(password string) error {
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

	cipherBytes, err := valuesToEntropy(s.values[:MoneroSeedWordCount-1])
	if err != nil {
		return err
	}
	var cipher crypto.SecretKey
	copy(cipher[:], cipherBytes)
	crypto.Zero(cipherBytes)

	key := maskKey(cipher, password)
	values, err := entropyToValues(key[:])
	if err != nil {
		return err
	}

	s.values = values
	s.key = KeyStoreFromKey(key)
	s.encrypted = false
	s.passwordHash = nil
	s.fp = crypto.Fingerprint(key[:])
	return nil
}

func newMoneroSeed(
	key crypto.SecretKey, args GenerateMoneroSeedArgs,
) (*MoneroSeed, error) {
	values, err := entropyToValues(key[:])
	if err != nil {
		return nil, err
	}
	birthday := args.Birthday
	if birthday == 0 && args.Height == 0 {
		birthday = uint64(time.Now().Unix())
	}
	return &MoneroSeed{baseSeed: baseSeed{
		seedType: SeedTypeMonero,
		dictType: SeedTypeMonero,
		values:   values,
		network:  args.Network,
		birthday: birthday,
		height:   args.Height,
		key:      KeyStoreFromKey(key),
		fp:       crypto.Fingerprint(key[:]),
	}}, nil
}

func moneroSeedFromIndices(
	values []uint16, encrypted bool, birthday, height uint64, network Network,
) (*MoneroSeed, error) {
	entropy, err := valuesToEntropy(values[:MoneroSeedWordCount-1])
	if err != nil {
		return nil, err
	}

	seed := &MoneroSeed{baseSeed: baseSeed{
		seedType:  SeedTypeMonero,
		dictType:  SeedTypeMonero,
		values:    values,
		network:   network,
		birthday:  birthday,
		height:    height,
		encrypted: encrypted,
		fp:        crypto.Fingerprint(entropy),
	}}
	if encrypted {
		seed.key = NewKeyStore()
	} else {
		var key crypto.SecretKey
		copy(key[:], entropy)
		seed.key = KeyStoreFromKey(key)
	}
	crypto.Zero(entropy)
	return seed, nil
}

// maskKey XORs the key with the password-derived keystream. The transform
// is its own inverse.
func maskKey(key crypto.SecretKey, password string) crypto.SecretKey {
	mask := crypto.Keystream(
		[]byte(password), []byte(moneroSeedSalt), crypto.SecretKeySize,
	)
	var out crypto.SecretKey
	for i := range out {
		out[i] = key[i] ^ mask[i]
	}
	crypto.Zero(mask)
	return out
}
