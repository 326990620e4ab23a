package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/vulpemventures/go-bip32"
)

const (
	// accountLookahead and indexLookahead bound the derivation window
	// scanned by HasAddress and AddressIndex.
	accountLookahead = 5
	indexLookahead   = 20
)

// Wallet is the data structure representing an offline signing wallet built
// from a single 32-byte secret spend key.
type Wallet struct {
	key            [32]byte
	restoreHeight  uint64
	addressVersion byte
}

type NewWalletArgs struct {
	Key            [32]byte
	RestoreHeight  uint64
	AddressVersion byte
}

func (a NewWalletArgs) validate() error {
	if a.Key == [32]byte{} {
		return ErrMissingKey
	}
	return nil
}

// NewWallet returns a wallet owning a copy of the given secret key.
func NewWallet(args NewWalletArgs) (*Wallet, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	return &Wallet{
		key:            args.Key,
		restoreHeight:  args.RestoreHeight,
		addressVersion: args.AddressVersion,
	}, nil
}

// RestoreHeight returns the chain height the wallet should scan from.
func (w *Wallet) RestoreHeight() uint64 {
	return w.restoreHeight
}

// PublicSpendKey returns the compressed public key of the wallet's secret
// spend key in hex format.
func (w *Wallet) PublicSpendKey() string {
	_, pubKey := btcec.PrivKeyFromBytes(w.key[:])
	return hex.EncodeToString(pubKey.SerializeCompressed())
}

// Address derives the base58check address for the given account and index.
func (w *Wallet) Address(account, index uint32) (string, error) {
	pubKey, err := w.derivePubKey(account, index)
	if err != nil {
		return "", err
	}
	return base58.CheckEncode(btcutil.Hash160(pubKey), w.addressVersion), nil
}

// Accounts returns the primary address of up to max accounts starting at
// offset.
func (w *Wallet) Accounts(max, offset uint32) ([]string, error) {
	addresses := make([]string, 0, max)
	for account := offset; account < offset+max; account++ {
		addr, err := w.Address(account, 0)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}

// SubAddresses returns up to max derived addresses of the given account
// starting at offset.
func (w *Wallet) SubAddresses(account, max, offset uint32) ([]string, error) {
	addresses := make([]string, 0, max)
	for index := offset; index < offset+max; index++ {
		addr, err := w.Address(account, index)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}

// HasAddress reports whether the given address belongs to the wallet's
// derivation window.
func (w *Wallet) HasAddress(address string) bool {
	_, _, err := w.AddressIndex(address)
	return err == nil
}

// AddressIndex returns the (account, index) pair the given address was
// derived from.
func (w *Wallet) AddressIndex(address string) (uint32, uint32, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return 0, 0, ErrInvalidAddress
	}
	if version != w.addressVersion {
		return 0, 0, ErrInvalidAddress
	}

	for account := uint32(0); account < accountLookahead; account++ {
		for index := uint32(0); index < indexLookahead; index++ {
			pubKey, err := w.derivePubKey(account, index)
			if err != nil {
				return 0, 0, err
			}
			if bytes.Equal(payload, btcutil.Hash160(pubKey)) {
				return account, index, nil
			}
		}
	}
	return 0, 0, ErrAddressNotFound
}

// SignData signs arbitrary data with the key behind the wallet's primary
// address and returns the compact recoverable signature in hex format.
func (w *Wallet) SignData(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrMissingData
	}

	key, err := w.deriveKey(0, 0)
	if err != nil {
		return "", err
	}
	privKey, _ := btcec.PrivKeyFromBytes(key.Key)
	digest := chainhash.DoubleHashB(data)
	sig, err := ecdsa.SignCompact(privKey, digest, true)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// VerifyData verifies a compact signature produced by SignData against the
// given primary address of the signer.
func (w *Wallet) VerifyData(data []byte, address, signature string) (bool, error) {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false, ErrInvalidSignature
	}
	payload, version, err := base58.CheckDecode(address)
	if err != nil || version != w.addressVersion {
		return false, ErrInvalidAddress
	}

	digest := chainhash.DoubleHashB(data)
	pubKey, _, err := ecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return false, ErrInvalidSignature
	}

	return bytes.Equal(payload, btcutil.Hash160(pubKey.SerializeCompressed())), nil
}

// Wipe zeroes the wallet's copy of the secret key.
func (w *Wallet) Wipe() {
	w.key = [32]byte{}
}

func (w *Wallet) derivePubKey(account, index uint32) ([]byte, error) {
	key, err := w.deriveKey(account, index)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Key, nil
}

func (w *Wallet) deriveKey(account, index uint32) (*bip32.Key, error) {
	masterKey, err := bip32.NewMasterKey(w.key[:])
	if err != nil {
		return nil, err
	}
	accountKey, err := masterKey.NewChildKey(bip32.FirstHardenedChild + account)
	if err != nil {
		return nil, err
	}
	return accountKey.NewChildKey(index)
}
