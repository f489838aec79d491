// Package registry maintains the collection of named wallets known to the
// engine: their names, addresses, key material and cached balances.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
)

// minNameLength is the shortest wallet name accepted.
const minNameLength = 3

// Uniqueness and validation failures surfaced to callers.
var (
	ErrInvalidName      = errors.New("wallet name must be at least 3 characters of letters, digits, space, underscore or dash")
	ErrDuplicateName    = errors.New("wallet name already in use")
	ErrDuplicateAddress = errors.New("wallet address already in use")
	ErrUnknownName      = errors.New("no wallet registered under that name")
)

// =============================================================================

// Wallet represents a named identity on the ledger. EncodedPrivateKey holds
// either the raw key hex or a keystore blob depending on IsEncrypted.
// CachedBalance is a read-only mirror of the ledger's balances map, refreshed
// on demand and never authoritative.
type Wallet struct {
	Name              string       `json:"name"`
	Address           keys.Address `json:"address"`
	EncodedPrivateKey string       `json:"encoded_private_key"`
	PublicKey         string       `json:"public_key"`
	CachedBalance     float64      `json:"cached_balance"`
	CreatedAt         time.Time    `json:"created_at"`
	IsEncrypted       bool         `json:"is_encrypted"`
}

// IsObserver reports whether the wallet was synthesized from an imported
// balance and carries no key material.
func (w Wallet) IsObserver() bool {
	return w.EncodedPrivateKey == ""
}

// =============================================================================

// Backup is the single wallet subset used for wallet export files. It is
// sufficient to restore the registry entry; the balance is re-fetched from
// the ledger on restore.
type Backup struct {
	Name              string       `json:"name"`
	Address           keys.Address `json:"address"`
	EncodedPrivateKey string       `json:"encoded_private_key"`
	PublicKey         string       `json:"public_key"`
	IsEncrypted       bool         `json:"is_encrypted"`
}

// NewBackup extracts the backup subset from a wallet.
func NewBackup(w Wallet) Backup {
	return Backup{
		Name:              w.Name,
		Address:           w.Address,
		EncodedPrivateKey: w.EncodedPrivateKey,
		PublicKey:         w.PublicKey,
		IsEncrypted:       w.IsEncrypted,
	}
}

// =============================================================================

// Registry maintains the set of wallets with uniqueness enforced on both
// name and address. Listing preserves insertion order.
type Registry struct {
	mu      sync.RWMutex
	wallets []Wallet
	byName  map[string]int
	byAddr  map[keys.Address]int
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]int),
		byAddr: make(map[keys.Address]int),
	}
}

// Add validates and inserts a new wallet.
func (r *Registry) Add(w Wallet) error {
	if err := ValidateName(w.Name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[w.Name]; exists {
		return ErrDuplicateName
	}
	if _, exists := r.byAddr[w.Address]; exists {
		return ErrDuplicateAddress
	}

	r.wallets = append(r.wallets, w)
	r.byName[w.Name] = len(r.wallets) - 1
	r.byAddr[w.Address] = len(r.wallets) - 1

	return nil
}

// Remove deletes the wallet registered under the name. The wallets behind
// it shift down one position, so their indexes are rebuilt.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.byName[name]
	if !exists {
		return ErrUnknownName
	}

	delete(r.byName, name)
	delete(r.byAddr, r.wallets[i].Address)

	r.wallets = append(r.wallets[:i], r.wallets[i+1:]...)
	for j := i; j < len(r.wallets); j++ {
		r.byName[r.wallets[j].Name] = j
		r.byAddr[r.wallets[j].Address] = j
	}

	return nil
}

// ByName returns the wallet registered under the name.
func (r *Registry) ByName(name string) (Wallet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.byName[name]
	if !exists {
		return Wallet{}, false
	}

	return r.wallets[i], true
}

// ByAddress returns the wallet registered under the address.
func (r *Registry) ByAddress(addr keys.Address) (Wallet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.byAddr[addr]
	if !exists {
		return Wallet{}, false
	}

	return r.wallets[i], true
}

// List returns a copy of the wallets in insertion order.
func (r *Registry) List() []Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cpy := make([]Wallet, len(r.wallets))
	copy(cpy, r.wallets)

	return cpy
}

// Count returns the number of registered wallets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.wallets)
}

// SetBalance refreshes the cached balance mirror for the wallet at the
// address. It reports whether a wallet was found.
func (r *Registry) SetBalance(addr keys.Address, balance float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.byAddr[addr]
	if !exists {
		return false
	}

	r.wallets[i].CachedBalance = balance

	return true
}

// =============================================================================

// ValidateName checks a wallet name against the registry rules: at least
// minNameLength characters drawn from letters, digits, space, underscore
// and dash. Names are case sensitive.
func ValidateName(name string) error {
	if len(name) < minNameLength {
		return ErrInvalidName
	}

	for _, c := range []byte(name) {
		if !isNameCharacter(c) {
			return ErrInvalidName
		}
	}

	return nil
}

// isNameCharacter returns bool of c being allowed in a wallet name.
func isNameCharacter(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '_' || c == ' ' || c == '-':
		return true
	}

	return false
}
