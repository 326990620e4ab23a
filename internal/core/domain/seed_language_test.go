package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otsproject/ots/internal/core/domain"
)

func TestLanguages(t *testing.T) {
	languages := domain.Languages()
	require.Len(t, languages, 9)

	codes := make(map[string]struct{})
	for _, language := range languages {
		require.NotEmpty(t, language.Code())
		require.NotEmpty(t, language.Name())
		require.NotEmpty(t, language.EnglishName())
		_, seen := codes[language.Code()]
		require.False(t, seen, "duplicate code %s", language.Code())
		codes[language.Code()] = struct{}{}
	}

	// Catalog order is stable.
	again := domain.Languages()
	for i, language := range languages {
		require.True(t, language.Equal(again[i]))
	}
}

func TestLanguagesFor(t *testing.T) {
	monero := domain.LanguagesFor(domain.SeedTypeMonero)
	require.Len(t, monero, 9)

	polyseed := domain.LanguagesFor(domain.SeedTypePolyseed)
	require.Len(t, polyseed, 8)
	for _, language := range polyseed {
		require.True(t, language.Supported(domain.SeedTypePolyseed))
		require.NotEqual(t, "zh-Hant", language.Code())
	}
}

func TestLanguageLookup(t *testing.T) {
	t.Run("from code", func(t *testing.T) {
		language, err := domain.LanguageFromCode("es")
		require.NoError(t, err)
		require.Equal(t, "Español", language.Name())
		require.Equal(t, "Spanish", language.EnglishName())
	})

	t.Run("from native name", func(t *testing.T) {
		language, err := domain.LanguageFromName("Čeština")
		require.NoError(t, err)
		require.Equal(t, "cs", language.Code())
	})

	t.Run("from english name", func(t *testing.T) {
		language, err := domain.LanguageFromEnglishName("Chinese (traditional)")
		require.NoError(t, err)
		require.Equal(t, "zh-Hant", language.Code())
	})

	t.Run("exact match only", func(t *testing.T) {
		_, err := domain.LanguageFromCode("ES")
		require.ErrorIs(t, err, domain.ErrLanguageNotFound)
		_, err = domain.LanguageFromEnglishName("spanish")
		require.ErrorIs(t, err, domain.ErrLanguageNotFound)
		_, err = domain.LanguageFromName("Klingon")
		require.ErrorIs(t, err, domain.ErrLanguageNotFound)
	})
}

func TestDefaultLanguage(t *testing.T) {
	for _, seedType := range []domain.SeedType{
		domain.SeedTypeMonero, domain.SeedTypePolyseed,
	} {
		language, err := domain.DefaultLanguage(seedType)
		require.NoError(t, err)
		require.Equal(t, "en", language.Code())

		// Exactly one default per seed type.
		count := 0
		for _, candidate := range domain.Languages() {
			if candidate.IsDefault(seedType) {
				count++
			}
		}
		require.Equal(t, 1, count)
	}
}

func TestLanguageWordList(t *testing.T) {
	for _, language := range domain.Languages() {
		list, err := language.WordList()
		require.NoError(t, err, language.Code())
		require.NotNil(t, list)
	}
}
