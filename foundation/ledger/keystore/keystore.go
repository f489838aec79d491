// Package keystore converts raw private keys to and from passphrase
// protected blobs.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation and cipher geometry. These values are part of the blob
// format and cannot change without breaking existing wallets.
const (
	iterations = 100_000
	saltLength = 16
	ivLength   = 12
	keyBytes   = 32
)

// ErrDecrypt reports a failed decryption. A wrong passphrase and a corrupted
// blob are deliberately indistinguishable.
var ErrDecrypt = errors.New("decrypt failed: wrong passphrase or corrupted data")

// Encrypt seals a private key under the passphrase and returns the hex
// encoded blob salt(16) || iv(12) || ciphertext. A fresh salt and IV are
// drawn per call, so encrypting the same key twice never yields the same
// blob.
func Encrypt(pk keys.PrivateKey, passphrase string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, iv, []byte(pk), nil)

	blob := make([]byte, 0, saltLength+ivLength+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = append(blob, sealed...)

	return hex.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt. It fails closed: no partially
// decrypted bytes are ever returned.
func Decrypt(blob string, passphrase string) (keys.PrivateKey, error) {
	raw, err := hex.DecodeString(blob)
	if err != nil || len(raw) <= saltLength+ivLength {
		return "", ErrDecrypt
	}

	salt := raw[:saltLength]
	iv := raw[saltLength : saltLength+ivLength]
	sealed := raw[saltLength+ivLength:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	opened, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	pk, err := keys.ParsePrivateKey(string(opened))
	if err != nil {
		return "", ErrDecrypt
	}

	return pk, nil
}

// newGCM derives the symmetric key from the passphrase and salt and
// constructs the AEAD used on both the seal and open paths.
func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyBytes, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher unavailable: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher unavailable: %w", err)
	}

	return gcm, nil
}
