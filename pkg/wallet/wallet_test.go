package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otsproject/ots/pkg/wallet"
)

var testKey = [32]byte{
	0x8f, 0x29, 0x52, 0x4e, 0xe5, 0x99, 0x5c, 0x83,
	0x8c, 0xa6, 0xf2, 0x8c, 0x7d, 0xed, 0x7d, 0xa6,
	0xdc, 0x51, 0xde, 0x80, 0x4f, 0xd2, 0x70, 0x37,
	0x75, 0x98, 0x9e, 0x65, 0xdd, 0xc1, 0xbb, 0x3b,
}

const mainnetVersion = byte(18)

func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(wallet.NewWalletArgs{
		Key:            testKey,
		RestoreHeight:  2641623,
		AddressVersion: mainnetVersion,
	})
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w := newTestWallet(t)
		require.NotNil(t, w)
		require.Equal(t, uint64(2641623), w.RestoreHeight())
		require.NotEmpty(t, w.PublicSpendKey())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := wallet.NewWallet(wallet.NewWalletArgs{
			AddressVersion: mainnetVersion,
		})
		require.ErrorIs(t, err, wallet.ErrMissingKey)
	})
}

func TestAddressDerivation(t *testing.T) {
	w := newTestWallet(t)

	addr, err := w.Address(0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, addr)

	// Derivation is deterministic.
	again, err := w.Address(0, 0)
	require.NoError(t, err)
	require.Equal(t, addr, again)

	other, err := w.Address(1, 0)
	require.NoError(t, err)
	require.NotEqual(t, addr, other)

	sub, err := w.Address(0, 1)
	require.NoError(t, err)
	require.NotEqual(t, addr, sub)
}

func TestAccountsAndSubAddresses(t *testing.T) {
	w := newTestWallet(t)

	accounts, err := w.Accounts(3, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	subAddresses, err := w.SubAddresses(0, 5, 0)
	require.NoError(t, err)
	require.Len(t, subAddresses, 5)
	require.Equal(t, accounts[0], subAddresses[0])
}

func TestAddressIndex(t *testing.T) {
	w := newTestWallet(t)

	addr, err := w.Address(2, 7)
	require.NoError(t, err)

	account, index, err := w.AddressIndex(addr)
	require.NoError(t, err)
	require.Equal(t, uint32(2), account)
	require.Equal(t, uint32(7), index)
	require.True(t, w.HasAddress(addr))

	t.Run("malformed address", func(t *testing.T) {
		_, _, err := w.AddressIndex("not an address")
		require.ErrorIs(t, err, wallet.ErrInvalidAddress)
	})

	t.Run("foreign address", func(t *testing.T) {
		foreign, err := wallet.NewWallet(wallet.NewWalletArgs{
			Key:            [32]byte{0x01},
			AddressVersion: mainnetVersion,
		})
		require.NoError(t, err)
		foreignAddr, err := foreign.Address(0, 0)
		require.NoError(t, err)

		_, _, err = w.AddressIndex(foreignAddr)
		require.ErrorIs(t, err, wallet.ErrAddressNotFound)
		require.False(t, w.HasAddress(foreignAddr))
	})
}

func TestSignVerifyData(t *testing.T) {
	w := newTestWallet(t)
	data := []byte("offline transaction payload")

	signature, err := w.SignData(data)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	addr, err := w.Address(0, 0)
	require.NoError(t, err)

	ok, err := w.VerifyData(data, addr, signature)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("tampered data", func(t *testing.T) {
		ok, err := w.VerifyData([]byte("other payload"), addr, signature)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("wrong address", func(t *testing.T) {
		otherAddr, err := w.Address(1, 0)
		require.NoError(t, err)
		ok, err := w.VerifyData(data, otherAddr, signature)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := w.SignData(nil)
		require.ErrorIs(t, err, wallet.ErrMissingData)
	})

	t.Run("garbage signature", func(t *testing.T) {
		_, err := w.VerifyData(data, addr, "zz")
		require.ErrorIs(t, err, wallet.ErrInvalidSignature)
	})
}

func TestWipe(t *testing.T) {
	w := newTestWallet(t)
	addr, err := w.Address(0, 0)
	require.NoError(t, err)

	w.Wipe()

	// The wiped wallet no longer derives the original addresses.
	wiped, err := w.Address(0, 0)
	require.NoError(t, err)
	require.NotEqual(t, addr, wiped)
}
