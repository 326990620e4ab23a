package dbbadger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otsproject/ots/internal/core/domain"
	dbbadger "github.com/otsproject/ots/internal/infrastructure/storage/db/badger"
)

func newRepo(t *testing.T) domain.SeedRecordRepository {
	t.Helper()
	repo, err := dbbadger.NewSeedRecordRepository("", nil)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func newRecord(fingerprint string) *domain.SeedRecord {
	return &domain.SeedRecord{
		Fingerprint:     fingerprint,
		Label:           "cold storage",
		Network:         domain.NetworkMain,
		Height:          2600000,
		LanguageCode:    "en",
		EncryptedPhrase: []byte("ciphertext"),
		CreatedAt:       time.Now(),
	}
}

func TestSeedRecordRepository(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	record := newRecord("A1B2C3")
	require.NoError(t, repo.AddRecord(ctx, record))

	t.Run("duplicate fingerprint", func(t *testing.T) {
		err := repo.AddRecord(ctx, newRecord("A1B2C3"))
		require.ErrorIs(t, err, domain.ErrRecordAlreadyExisting)
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.GetRecord(ctx, "A1B2C3")
		require.NoError(t, err)
		require.Equal(t, record.Fingerprint, got.Fingerprint)
		require.Equal(t, record.Label, got.Label)
		require.Equal(t, record.Network, got.Network)
		require.Equal(t, record.Height, got.Height)
		require.Equal(t, record.LanguageCode, got.LanguageCode)
		require.Equal(t, record.EncryptedPhrase, got.EncryptedPhrase)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := repo.GetRecord(ctx, "FFFFFF")
		require.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, repo.AddRecord(ctx, newRecord("D4E5F6")))
		records, err := repo.ListRecords(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteRecord(ctx, "D4E5F6"))
		require.ErrorIs(
			t, repo.DeleteRecord(ctx, "D4E5F6"), domain.ErrRecordNotFound,
		)
	})
}
