// Package signature provides the hashing support for the ledger. Every digest
// in the system (address derivation, transaction ids, pseudo-signatures,
// mnemonic seed collapse) funnels through this package.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// TagLength is the number of hex characters kept from a transaction digest
// when producing the pseudo-signature integrity tag.
const TagLength = 16

// Hash returns the lowercase hex encoding of the SHA-256 digest of the data.
func Hash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// HashBytes returns the lowercase hex encoding of the SHA-256 digest of the
// raw bytes.
func HashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Sign produces the pseudo-signature for a transaction: the first TagLength
// hex characters of SHA-256(txID + sender + timestamp).
//
// CORE NOTE: This is a hash-derived integrity tag, not a verifiable digital
// signature. No key material is involved and nothing ever verifies it against
// a public key. The wire format requires this exact construction.
func Sign(txID string, sender string, timestamp float64) string {
	return Hash(txID + sender + FormatDecimal(timestamp))[:TagLength]
}

// FormatDecimal returns the canonical decimal form for amounts, fees and
// timestamps: the shortest plain decimal string that round-trips the value.
// Every numeric field that feeds a digest must pass through here so ids stay
// stable across exports and imports.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsHash reports whether the value is a 64 character hex encoded digest.
func IsHash(value string) bool {
	if len(value) != 64 {
		return false
	}

	for _, c := range []byte(value) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
