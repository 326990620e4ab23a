package domain

import "github.com/otsproject/ots/pkg/crypto"

// LegacySeedWordCount is 12 data words plus the trailing checksum word.
const LegacySeedWordCount = 13

// LegacySeed is a 13-word seed kept for importing old wallets. It is
// decode-only: no factory mints fresh legacy seeds, to discourage their use
// for new wallets, and it carries no encrypted form.
type LegacySeed struct {
	baseSeed
}

type DecodeLegacySeedArgs struct {
	Phrase   string
	Language SeedLanguage
	Birthday uint64
	Height   uint64
	Network  Network
}

func (a DecodeLegacySeedArgs) validate() error {
	if len(a.Phrase) == 0 {
		return ErrSeedMissingPhrase
	}
	return nil
}

// DecodeLegacySeed imports a legacy seed from its phrase.
func DecodeLegacySeed(args DecodeLegacySeedArgs) (*LegacySeed, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	values, err := splitPhrase(
		args.Phrase, args.Language, SeedTypeMonero, LegacySeedWordCount,
	)
	if err != nil {
		return nil, err
	}
	return legacySeedFromIndices(values, args.Birthday, args.Height, args.Network)
}

type LegacySeedFromValuesArgs struct {
	Values   []uint16
	Birthday uint64
	Height   uint64
	Network  Network
}

// LegacySeedFromValues imports a legacy seed already in numeric form.
func LegacySeedFromValues(args LegacySeedFromValuesArgs) (*LegacySeed, error) {
	if err := checkValues(args.Values, LegacySeedWordCount); err != nil {
		return nil, err
	}
	values := make([]uint16, LegacySeedWordCount)
	copy(values, args.Values)
	return legacySeedFromIndices(values, args.Birthday, args.Height, args.Network)
}

func legacySeedFromIndices(
	values []uint16, birthday, height uint64, network Network,
) (*LegacySeed, error) {
	entropy, err := valuesToEntropy(values[:LegacySeedWordCount-1])
	if err != nil {
		return nil, err
	}
	key := crypto.SecretKeyFromHash(entropy)
	crypto.Zero(entropy)

	return &LegacySeed{baseSeed{
		seedType: SeedTypeMonero,
		dictType: SeedTypeMonero,
		values:   values,
		network:  network,
		birthday: birthday,
		height:   height,
		key:      KeyStoreFromKey(key),
		fp:       crypto.Fingerprint(key[:]),
	}}, nil
}
