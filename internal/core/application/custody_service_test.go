package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otsproject/ots/internal/core/application"
	"github.com/otsproject/ots/internal/core/domain"
	linear_estimator "github.com/otsproject/ots/internal/infrastructure/chain-estimator/linear"
	aes128_cypher "github.com/otsproject/ots/internal/infrastructure/seed-cypher/aes128"
	"github.com/otsproject/ots/internal/infrastructure/storage/db/inmemory"
)

var (
	ctx      = context.Background()
	password = "Pa55w0rd"
)

func newTestService(t *testing.T) *application.CustodyService {
	t.Helper()
	repo := inmemory.NewSeedRecordRepository()
	t.Cleanup(repo.Close)
	return application.NewCustodyService(
		inmemory.NewKeyJar(0),
		inmemory.NewSeedJar(),
		repo,
		aes128_cypher.NewAES128Cypher(),
		linear_estimator.NewService(),
	)
}

func TestGenerateSeed(t *testing.T) {
	svc := newTestService(t)

	t.Run("monero", func(t *testing.T) {
		info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
			Type:   "monero",
			Height: 2600000,
		}, domain.NetworkMain)
		require.NoError(t, err)
		require.Len(t, info.Fingerprint, 6)
		require.Equal(t, "monero", info.Type)
		require.Equal(t, "mainnet", info.Network)
		require.Equal(t, uint64(2600000), info.Height)
		require.NotZero(t, info.KeyHandle)
		require.NotEmpty(t, info.Address)
	})

	t.Run("polyseed", func(t *testing.T) {
		info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
			Type:     "polyseed",
			Birthday: 1667000000,
		}, domain.NetworkMain)
		require.NoError(t, err)
		require.Equal(t, "polyseed", info.Type)
		require.NotZero(t, info.KeyHandle)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
			Type: "bip39",
		}, domain.NetworkMain)
		require.Error(t, err)
	})
}

func TestImportSeed(t *testing.T) {
	svc := newTestService(t)

	generated, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Type:   "monero",
		Height: 2600000,
	}, domain.NetworkMain)
	require.NoError(t, err)

	phrase, err := svc.ExportSeed(ctx, generated.Fingerprint, "")
	require.NoError(t, err)
	require.Len(t, strings.Fields(phrase), domain.MoneroSeedWordCount)

	t.Run("same phrase same fingerprint", func(t *testing.T) {
		other := newTestService(t)
		imported, err := other.ImportSeed(ctx, application.ImportSeedArgs{
			Phrase: phrase,
			Height: 2600000,
		}, domain.NetworkMain)
		require.NoError(t, err)
		require.Equal(t, generated.Fingerprint, imported.Fingerprint)
		require.Equal(t, generated.Address, imported.Address)
	})

	t.Run("foreign language", func(t *testing.T) {
		spanishPhrase, err := svc.ExportSeed(ctx, generated.Fingerprint, "es")
		require.NoError(t, err)
		require.NotEqual(t, phrase, spanishPhrase)

		other := newTestService(t)
		imported, err := other.ImportSeed(ctx, application.ImportSeedArgs{
			Phrase:       spanishPhrase,
			LanguageCode: "es",
			Height:       2600000,
		}, domain.NetworkMain)
		require.NoError(t, err)
		require.Equal(t, generated.Fingerprint, imported.Fingerprint)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, err := svc.ImportSeed(ctx, application.ImportSeedArgs{
			Phrase:       phrase,
			LanguageCode: "xx",
		}, domain.NetworkMain)
		require.ErrorIs(t, err, domain.ErrLanguageNotFound)
	})

	t.Run("wrong word count", func(t *testing.T) {
		_, err := svc.ImportSeed(ctx, application.ImportSeedArgs{
			Phrase: "too short a phrase",
		}, domain.NetworkMain)
		require.ErrorIs(t, err, domain.ErrSeedInvalidWordCount)
	})
}

func TestSeedListing(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.GenerateSeed(
		ctx, application.GenerateSeedArgs{}, domain.NetworkMain,
	)
	require.NoError(t, err)
	second, err := svc.GenerateSeed(
		ctx, application.GenerateSeedArgs{Type: "polyseed"}, domain.NetworkMain,
	)
	require.NoError(t, err)

	seeds := svc.ListSeeds(ctx)
	require.Len(t, seeds, 2)
	require.Equal(t, first.Fingerprint, seeds[0].Fingerprint)
	require.Equal(t, second.Fingerprint, seeds[1].Fingerprint)

	info, err := svc.GetSeedInfo(ctx, first.Fingerprint)
	require.NoError(t, err)
	require.Equal(t, first.Fingerprint, info.Fingerprint)

	_, err = svc.GetSeedInfo(ctx, "FFFFFF")
	require.ErrorIs(t, err, domain.ErrSeedNotFound)
}

func TestEncryptDecryptSeed(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Height: 2600000,
	}, domain.NetworkMain)
	require.NoError(t, err)

	encrypted, err := svc.EncryptSeed(ctx, info.Fingerprint, password)
	require.NoError(t, err)

	// The key handle is revoked and the fingerprint changes while
	// encrypted; the returned info carries the new one.
	require.True(t, encrypted.Encrypted)
	require.Zero(t, encrypted.KeyHandle)
	require.Empty(t, encrypted.Address)
	require.NotEqual(t, info.Fingerprint, encrypted.Fingerprint)

	seeds := svc.ListSeeds(ctx)
	require.Len(t, seeds, 1)
	require.Equal(t, encrypted.Fingerprint, seeds[0].Fingerprint)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.DecryptSeed(ctx, encrypted.Fingerprint, "wrong")
		require.ErrorIs(t, err, domain.ErrSeedInvalidPassword)
	})

	decrypted, err := svc.DecryptSeed(ctx, encrypted.Fingerprint, password)
	require.NoError(t, err)
	require.False(t, decrypted.Encrypted)
	require.NotZero(t, decrypted.KeyHandle)
	require.Equal(t, info.Fingerprint, decrypted.Fingerprint)
	require.Equal(t, info.Address, decrypted.Address)
}

func TestPersistRestoreSeed(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Height: 2600000,
	}, domain.NetworkMain)
	require.NoError(t, err)

	require.NoError(
		t, svc.PersistSeed(ctx, info.Fingerprint, "cold storage", password),
	)

	t.Run("duplicate record", func(t *testing.T) {
		err := svc.PersistSeed(ctx, info.Fingerprint, "cold storage", password)
		require.ErrorIs(t, err, domain.ErrRecordAlreadyExisting)
	})

	records, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, info.Fingerprint, records[0].Fingerprint)
	require.Equal(t, "cold storage", records[0].Label)

	t.Run("restore after forgetting", func(t *testing.T) {
		require.NoError(t, svc.ForgetSeed(ctx, info.Fingerprint, false))
		require.Empty(t, svc.ListSeeds(ctx))

		restored, err := svc.RestoreSeed(ctx, info.Fingerprint, password)
		require.NoError(t, err)
		require.Equal(t, info.Fingerprint, restored.Fingerprint)
		require.Equal(t, info.Address, restored.Address)
	})

	t.Run("restore with wrong password", func(t *testing.T) {
		_, err := svc.RestoreSeed(ctx, info.Fingerprint, "wrong")
		require.ErrorIs(t, err, domain.ErrSeedInvalidPassword)
	})

	t.Run("forget with record deletion", func(t *testing.T) {
		require.NoError(t, svc.ForgetSeed(ctx, info.Fingerprint, true))
		records, err := svc.ListRecords(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})
}

func TestPersistEncryptedSeed(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Height: 2600000,
	}, domain.NetworkMain)
	require.NoError(t, err)

	encrypted, err := svc.EncryptSeed(ctx, info.Fingerprint, password)
	require.NoError(t, err)

	require.NoError(
		t, svc.PersistSeed(ctx, encrypted.Fingerprint, "vault", password),
	)
	records, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Encrypted)

	require.NoError(t, svc.ForgetSeed(ctx, encrypted.Fingerprint, false))

	// The restored seed comes back in the encrypted state: no key handle,
	// no address, and no wallet until decrypted.
	restored, err := svc.RestoreSeed(ctx, encrypted.Fingerprint, password)
	require.NoError(t, err)
	require.True(t, restored.Encrypted)
	require.Equal(t, encrypted.Fingerprint, restored.Fingerprint)
	require.Zero(t, restored.KeyHandle)
	require.Empty(t, restored.Address)

	_, err = svc.Address(ctx, restored.Fingerprint, 0, 0)
	require.ErrorIs(t, err, domain.ErrSeedEncrypted)
	_, err = svc.SignData(ctx, restored.Fingerprint, []byte("payload"))
	require.ErrorIs(t, err, domain.ErrSeedEncrypted)

	decrypted, err := svc.DecryptSeed(ctx, restored.Fingerprint, password)
	require.NoError(t, err)
	require.Equal(t, info.Fingerprint, decrypted.Fingerprint)
	require.Equal(t, info.Address, decrypted.Address)
}

func TestAddressAndSigning(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Height: 2600000,
	}, domain.NetworkMain)
	require.NoError(t, err)

	addr, err := svc.Address(ctx, info.Fingerprint, 0, 0)
	require.NoError(t, err)
	require.Equal(t, info.Address, addr)

	sub, err := svc.Address(ctx, info.Fingerprint, 1, 3)
	require.NoError(t, err)
	require.NotEqual(t, addr, sub)

	signature, err := svc.SignData(ctx, info.Fingerprint, []byte("payload"))
	require.NoError(t, err)
	require.NotEmpty(t, signature)
}

func TestKeyOperations(t *testing.T) {
	svc := newTestService(t)

	hexKey := strings.Repeat("ab", 32)
	handle, err := svc.StoreKey(ctx, hexKey, "imported")
	require.NoError(t, err)
	require.NotZero(t, handle)

	t.Run("invalid key material", func(t *testing.T) {
		_, err := svc.StoreKey(ctx, "nothex", "bad")
		require.ErrorIs(t, err, domain.ErrKeyInvalid)
		require.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
		_, err = svc.StoreKey(ctx, "abcd", "short")
		require.ErrorIs(t, err, domain.ErrKeyInvalid)
	})

	keys := svc.ListKeys(ctx)
	require.Len(t, keys, 1)
	require.Equal(t, handle, keys[0].Handle)
	require.Equal(t, "imported", keys[0].Label)
	require.Empty(t, keys[0].SeedFingerprint)

	t.Run("seed keys carry their fingerprint", func(t *testing.T) {
		info, err := svc.GenerateSeed(
			ctx, application.GenerateSeedArgs{}, domain.NetworkMain,
		)
		require.NoError(t, err)

		keys := svc.ListKeys(ctx)
		require.Len(t, keys, 2)
		found := false
		for _, key := range keys {
			if key.SeedFingerprint == info.Fingerprint {
				found = true
			}
		}
		require.True(t, found)
	})

	require.True(t, svc.RemoveKey(ctx, handle))
	require.False(t, svc.RemoveKey(ctx, handle))
}
