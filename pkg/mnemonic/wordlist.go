package mnemonic

import (
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// WordListSize is the number of words every supported dictionary carries.
const WordListSize = 2048

// WordList is an immutable dictionary of exactly 2048 words with reverse
// lookup by word.
type WordList struct {
	words []string
	index map[string]int
}

var (
	dictionaries     map[string]*WordList
	dictionariesOnce sync.Once
)

// Dictionary returns the word list registered for the given language code.
func Dictionary(code string) (*WordList, error) {
	dictionariesOnce.Do(func() {
		dictionaries = map[string]*WordList{
			"en":      mustNewWordList(wordlists.English),
			"es":      mustNewWordList(wordlists.Spanish),
			"fr":      mustNewWordList(wordlists.French),
			"it":      mustNewWordList(wordlists.Italian),
			"cs":      mustNewWordList(wordlists.Czech),
			"ja":      mustNewWordList(wordlists.Japanese),
			"ko":      mustNewWordList(wordlists.Korean),
			"zh-Hans": mustNewWordList(wordlists.ChineseSimplified),
			"zh-Hant": mustNewWordList(wordlists.ChineseTraditional),
		}
	})

	list, ok := dictionaries[code]
	if !ok {
		return nil, ErrDictionaryNotFound
	}
	return list, nil
}

// NewWordList builds a WordList from the given words.
func NewWordList(words []string) (*WordList, error) {
	if len(words) != WordListSize {
		return nil, ErrInvalidWordList
	}
	index := make(map[string]int, len(words))
	for i, w := range words {
		index[w] = i
	}
	return &WordList{words: words, index: index}, nil
}

func mustNewWordList(words []string) *WordList {
	list, err := NewWordList(words)
	if err != nil {
		panic(err)
	}
	return list
}

// Index returns the position of the given word in the list.
func (l *WordList) Index(word string) (int, bool) {
	i, ok := l.index[word]
	return i, ok
}

// Word returns the word at the given position.
func (l *WordList) Word(index int) (string, error) {
	if index < 0 || index >= len(l.words) {
		return "", ErrIndexOutOfRange
	}
	return l.words[index], nil
}

// Words returns a copy of the underlying word list.
func (l *WordList) Words() []string {
	words := make([]string, len(l.words))
	copy(words, l.words)
	return words
}
