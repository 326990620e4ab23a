package mnemonic

import (
	"encoding/binary"
	"hash/crc32"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
)

// The underlying bip39 encoder keeps the active word list in package state,
// so every call that touches it must hold this lock.
var bip39Lock sync.Mutex

// EntropyToWords encodes entropy into mnemonic words of the given list,
// appending the scheme's embedded checksum bits.
func EntropyToWords(entropy []byte, list *WordList) ([]string, error) {
	if len(entropy) < 16 || len(entropy) > 32 || len(entropy)%4 != 0 {
		return nil, ErrInvalidEntropy
	}

	bip39Lock.Lock()
	defer bip39Lock.Unlock()

	bip39.SetWordList(list.words)
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Fields(phrase), nil
}

// WordsToEntropy decodes mnemonic words of the given list back into entropy,
// validating word membership and the embedded checksum.
func WordsToEntropy(words []string, list *WordList) ([]byte, error) {
	for _, w := range words {
		if _, ok := list.Index(w); !ok {
			return nil, ErrWordNotInList
		}
	}

	bip39Lock.Lock()
	defer bip39Lock.Unlock()

	bip39.SetWordList(list.words)
	entropy, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		return nil, ErrInvalidChecksum
	}
	return entropy, nil
}

// WordsToIndices maps words to their numeric, language-independent form.
func WordsToIndices(words []string, list *WordList) ([]uint16, error) {
	indices := make([]uint16, len(words))
	for i, w := range words {
		idx, ok := list.Index(w)
		if !ok {
			return nil, ErrWordNotInList
		}
		indices[i] = uint16(idx)
	}
	return indices, nil
}

// IndicesToWords renders the numeric form as words of the given list.
func IndicesToWords(indices []uint16, list *WordList) ([]string, error) {
	words := make([]string, len(indices))
	for i, idx := range indices {
		w, err := list.Word(int(idx))
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

// ChecksumPosition selects which of the data words gets duplicated as the
// trailing checksum word. The CRC32 digest runs over the numeric form, so
// the selected position, and with it the checksum word's index, is the same
// under every dictionary.
func ChecksumPosition(indices []uint16) int {
	buf := make([]byte, 2*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[2*i:], idx)
	}
	return int(crc32.ChecksumIEEE(buf) % uint32(len(indices)))
}

// VerifyChecksumIndex reports whether the trailing checksum index matches
// the digest of the data indices preceding it.
func VerifyChecksumIndex(indices []uint16, checksum uint16) bool {
	return indices[ChecksumPosition(indices)] == checksum
}
