// Package mnemonic implements the 12 word recovery phrases for wallet keys.
package mnemonic

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
)

// WordCount is the fixed number of words in a recovery phrase.
const WordCount = 12

// ErrInvalidMnemonic is returned when a phrase doesn't contain exactly
// WordCount words.
var ErrInvalidMnemonic = fmt.Errorf("mnemonic must contain exactly %d words", WordCount)

// Generate draws WordCount words from the word list. Words are drawn
// independently with replacement, so a phrase may repeat a word.
func Generate() ([]string, error) {
	max := big.NewInt(int64(len(wordList)))

	words := make([]string, WordCount)
	for i := range words {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, fmt.Errorf("reading entropy: %w", err)
		}
		words[i] = wordList[n.Int64()]
	}

	return words, nil
}

// DeriveKey collapses a recovery phrase back into its private key: the words
// joined by single spaces are the sole entropy, hashed with SHA-256. There is
// no checksum word and no BIP-39 compatibility.
func DeriveKey(words []string) (keys.PrivateKey, error) {
	if len(words) != WordCount {
		return "", ErrInvalidMnemonic
	}

	phrase := strings.Join(words, " ")

	return keys.PrivateKey(signature.Hash(phrase)), nil
}

// SplitPhrase breaks a phrase typed as a single string into its words.
func SplitPhrase(phrase string) []string {
	return strings.Fields(phrase)
}
