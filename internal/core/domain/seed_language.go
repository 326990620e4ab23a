package domain

import (
	"sync"

	"github.com/otsproject/ots/pkg/mnemonic"
)

// SeedType classifies the mnemonic scheme family a language dictionary can
// serve.
type SeedType int

const (
	SeedTypeMonero SeedType = iota
	SeedTypePolyseed
)

func (t SeedType) String() string {
	switch t {
	case SeedTypeMonero:
		return "monero"
	case SeedTypePolyseed:
		return "polyseed"
	default:
		return "unknown"
	}
}

// SeedLanguage is an immutable catalog entry describing one mnemonic
// dictionary. Equality is defined solely by code.
type SeedLanguage struct {
	code        string
	nativeName  string
	englishName string
	supported   map[SeedType]bool
	defaultFor  map[SeedType]bool
}

// The process-wide catalog, populated exactly once on first access from the
// dictionary collaborator and read-only thereafter.
var (
	catalogOnce sync.Once
	catalog     []SeedLanguage
)

type languageRow struct {
	code, nativeName, englishName string
	monero, polyseed              bool
	defaultMonero, defaultPoly    bool
}

// Catalog rows. The dictionaries themselves come from pkg/mnemonic; codes
// must match the ones it registers. English is the designated default for
// both seed types; the invariant of at most one default per type is encoded
// right here.
var languageRows = []languageRow{
	{"en", "English", "English", true, true, true, true},
	{"es", "Español", "Spanish", true, true, false, false},
	{"fr", "Français", "French", true, true, false, false},
	{"it", "Italiano", "Italian", true, true, false, false},
	{"cs", "Čeština", "Czech", true, true, false, false},
	{"ja", "日本語", "Japanese", true, true, false, false},
	{"ko", "한국어", "Korean", true, true, false, false},
	{"zh-Hans", "简体中文", "Chinese (simplified)", true, true, false, false},
	{"zh-Hant", "繁體中文", "Chinese (traditional)", true, false, false, false},
}

func languageCatalog() []SeedLanguage {
	catalogOnce.Do(func() {
		catalog = make([]SeedLanguage, 0, len(languageRows))
		for _, row := range languageRows {
			catalog = append(catalog, SeedLanguage{
				code:        row.code,
				nativeName:  row.nativeName,
				englishName: row.englishName,
				supported: map[SeedType]bool{
					SeedTypeMonero:   row.monero,
					SeedTypePolyseed: row.polyseed,
				},
				defaultFor: map[SeedType]bool{
					SeedTypeMonero:   row.defaultMonero,
					SeedTypePolyseed: row.defaultPoly,
				},
			})
		}
	})
	return catalog
}

// Languages returns the full immutable language catalog in catalog order.
func Languages() []SeedLanguage {
	list := languageCatalog()
	out := make([]SeedLanguage, len(list))
	copy(out, list)
	return out
}

// LanguagesFor returns the catalog entries supporting the given seed type,
// in catalog order.
func LanguagesFor(seedType SeedType) []SeedLanguage {
	out := make([]SeedLanguage, 0)
	for _, lang := range languageCatalog() {
		if lang.Supported(seedType) {
			out = append(out, lang)
		}
	}
	return out
}

// LanguageFromName returns the language with the given native name. The
// match is exact and case-sensitive.
func LanguageFromName(name string) (SeedLanguage, error) {
	for _, lang := range languageCatalog() {
		if lang.nativeName == name {
			return lang, nil
		}
	}
	return SeedLanguage{}, ErrLanguageNotFound
}

// LanguageFromEnglishName returns the language with the given English name.
// The match is exact and case-sensitive.
func LanguageFromEnglishName(name string) (SeedLanguage, error) {
	for _, lang := range languageCatalog() {
		if lang.englishName == name {
			return lang, nil
		}
	}
	return SeedLanguage{}, ErrLanguageNotFound
}

// LanguageFromCode returns the language with the given code.
func LanguageFromCode(code string) (SeedLanguage, error) {
	for _, lang := range languageCatalog() {
		if lang.code == code {
			return lang, nil
		}
	}
	return SeedLanguage{}, ErrLanguageNotFound
}

// DefaultLanguage returns the designated default language for the given
// seed type.
func DefaultLanguage(seedType SeedType) (SeedLanguage, error) {
	for _, lang := range languageCatalog() {
		if lang.IsDefault(seedType) {
			return lang, nil
		}
	}
	return SeedLanguage{}, ErrNoDefaultLanguage
}

func (l SeedLanguage) Code() string { return l.code }

func (l SeedLanguage) Name() string { return l.nativeName }

func (l SeedLanguage) EnglishName() string { return l.englishName }

// Supported reports whether the language dictionary can serve the given
// seed type.
func (l SeedLanguage) Supported(seedType SeedType) bool {
	return l.supported[seedType]
}

// IsDefault reports whether the language is the designated default for the
// given seed type.
func (l SeedLanguage) IsDefault(seedType SeedType) bool {
	return l.defaultFor[seedType]
}

// Equal reports whether two catalog entries identify the same language.
func (l SeedLanguage) Equal(other SeedLanguage) bool {
	return l.code == other.code
}

// WordList returns the language's dictionary.
func (l SeedLanguage) WordList() (*mnemonic.WordList, error) {
	list, err := mnemonic.Dictionary(l.code)
	if err != nil {
		return nil, ErrLanguageNotFound
	}
	return list, nil
}
