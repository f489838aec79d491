package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/keystore"
	"github.com/goldstarcoin/ledger/foundation/ledger/mnemonic"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
)

// Wallet level failures surfaced to callers.
var (
	ErrUnknownWallet = errors.New("wallet not found")

	// ErrAddressCollision is returned when a freshly generated key derives
	// an address already present in the registry. The caller may retry.
	ErrAddressCollision = errors.New("generated address already in use, retry")
)

// CreateWallet generates a new key pair and registers it under the name.
// A non-empty passphrase encrypts the key material at rest.
func (s *State) CreateWallet(name string, passphrase string) (registry.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := registry.ValidateName(name); err != nil {
		return registry.Wallet{}, err
	}
	if _, exists := s.registry.ByName(name); exists {
		return registry.Wallet{}, registry.ErrDuplicateName
	}

	pk, err := keys.Generate()
	if err != nil {
		return registry.Wallet{}, fmt.Errorf("generating private key: %w", err)
	}

	addr := pk.Address()
	if _, exists := s.registry.ByAddress(addr); exists {
		return registry.Wallet{}, ErrAddressCollision
	}

	encoded, encrypted, err := encodeKey(pk, passphrase)
	if err != nil {
		return registry.Wallet{}, err
	}

	w := registry.Wallet{
		Name:              name,
		Address:           addr,
		EncodedPrivateKey: encoded,
		PublicKey:         pk.PublicKey(),
		CachedBalance:     0,
		CreatedAt:         time.Now().UTC(),
		IsEncrypted:       encrypted,
	}

	if err := s.registry.Add(w); err != nil {
		return registry.Wallet{}, err
	}

	s.persistLocked()
	s.evHandler("state: create: wallet[%s] address[%s]", w.Name, w.Address)

	return w, nil
}

// ImportWalletFromKey registers a wallet for an existing private key. The
// key must be 64 hexadecimal characters. Any balance already recorded on
// the ledger for the derived address is picked up as the cached balance.
func (s *State) ImportWalletFromKey(name string, privateKeyHex string, passphrase string) (registry.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pk, err := keys.ParsePrivateKey(privateKeyHex)
	if err != nil {
		return registry.Wallet{}, err
	}

	return s.importLocked(name, pk, passphrase)
}

// ImportWalletFromMnemonic re-derives the private key from a 12 word
// recovery phrase and registers a wallet for it.
func (s *State) ImportWalletFromMnemonic(name string, words []string, passphrase string) (registry.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pk, err := mnemonic.DeriveKey(words)
	if err != nil {
		return registry.Wallet{}, err
	}

	return s.importLocked(name, pk, passphrase)
}

// importLocked carries the shared import flow once key material is known.
func (s *State) importLocked(name string, pk keys.PrivateKey, passphrase string) (registry.Wallet, error) {
	if err := registry.ValidateName(name); err != nil {
		return registry.Wallet{}, err
	}
	if _, exists := s.registry.ByName(name); exists {
		return registry.Wallet{}, registry.ErrDuplicateName
	}

	addr := pk.Address()
	if _, exists := s.registry.ByAddress(addr); exists {
		return registry.Wallet{}, registry.ErrDuplicateAddress
	}

	encoded, encrypted, err := encodeKey(pk, passphrase)
	if err != nil {
		return registry.Wallet{}, err
	}

	balance, _ := s.db.Balance(addr)

	w := registry.Wallet{
		Name:              name,
		Address:           addr,
		EncodedPrivateKey: encoded,
		PublicKey:         pk.PublicKey(),
		CachedBalance:     balance,
		CreatedAt:         time.Now().UTC(),
		IsEncrypted:       encrypted,
	}

	if err := s.registry.Add(w); err != nil {
		return registry.Wallet{}, err
	}

	s.persistLocked()
	s.evHandler("state: import: wallet[%s] address[%s]", w.Name, w.Address)

	return w, nil
}

// GenerateMnemonic produces a fresh 12 word recovery phrase. Nothing is
// registered until the phrase is imported.
func (s *State) GenerateMnemonic() ([]string, error) {
	return mnemonic.Generate()
}

// =============================================================================

// BackupWallet extracts the restorable subset of the named wallet.
func (s *State) BackupWallet(name string) (registry.Backup, error) {
	w, exists := s.registry.ByName(name)
	if !exists {
		return registry.Backup{}, ErrUnknownWallet
	}

	return registry.NewBackup(w), nil
}

// RestoreWallet re-registers a wallet from a backup. The balance is not
// part of the backup; it is re-fetched from the ledger.
func (s *State) RestoreWallet(b registry.Backup) (registry.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := registry.ValidateName(b.Name); err != nil {
		return registry.Wallet{}, err
	}
	if !b.Address.IsAddress() {
		return registry.Wallet{}, fmt.Errorf("backup address %q is not properly formatted", b.Address)
	}
	if _, exists := s.registry.ByName(b.Name); exists {
		return registry.Wallet{}, registry.ErrDuplicateName
	}
	if _, exists := s.registry.ByAddress(b.Address); exists {
		return registry.Wallet{}, registry.ErrDuplicateAddress
	}

	balance, _ := s.db.Balance(b.Address)

	w := registry.Wallet{
		Name:              b.Name,
		Address:           b.Address,
		EncodedPrivateKey: b.EncodedPrivateKey,
		PublicKey:         b.PublicKey,
		CachedBalance:     balance,
		CreatedAt:         time.Now().UTC(),
		IsEncrypted:       b.IsEncrypted,
	}

	if err := s.registry.Add(w); err != nil {
		return registry.Wallet{}, err
	}

	s.persistLocked()
	s.evHandler("state: restore: wallet[%s] address[%s]", w.Name, w.Address)

	return w, nil
}

// =============================================================================

// encodeKey prepares key material for storage, encrypting it when a
// passphrase is provided.
func encodeKey(pk keys.PrivateKey, passphrase string) (encoded string, encrypted bool, err error) {
	if passphrase == "" {
		return string(pk), false, nil
	}

	blob, err := keystore.Encrypt(pk, passphrase)
	if err != nil {
		return "", false, fmt.Errorf("encrypting private key: %w", err)
	}

	return blob, true, nil
}
