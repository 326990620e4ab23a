package mnemonic

import "errors"

var (
	ErrDictionaryNotFound = errors.New("no word list for the given language code")
	ErrInvalidWordList    = errors.New("word list must contain exactly 2048 words")
	ErrWordNotInList      = errors.New("word not found in word list")
	ErrIndexOutOfRange    = errors.New("word index out of word list range")
	ErrInvalidChecksum    = errors.New("mnemonic checksum mismatch")
	ErrInvalidEntropy     = errors.New("entropy size must be a multiple of 4 bytes in the range [16,32]")
)
