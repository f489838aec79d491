package state

import (
	"errors"
	"fmt"

	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
)

// Transfer level failures surfaced to callers.
var (
	ErrInvalidAddress  = errors.New("receiver address is not properly formatted")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrSupplyExhausted = errors.New("issuance would exceed the total supply")
)

// InsufficientFundsError is returned from Send when the wallet balance
// cannot cover the amount plus the fee.
type InsufficientFundsError struct {
	Balance  float64
	Required float64
}

// Error implements the error interface.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance[%s] required[%s] short[%s]",
		signature.FormatDecimal(e.Balance),
		signature.FormatDecimal(e.Required),
		signature.FormatDecimal(e.Shortfall()))
}

// Shortfall returns the exact amount missing to cover the transaction.
func (e *InsufficientFundsError) Shortfall() float64 {
	return e.Required - e.Balance
}

// =============================================================================

// Send transfers value from the named wallet to the receiver address. The
// balance read, validation, balance write and flush run as one critical
// section; either the whole transfer commits or nothing changes. The
// committed transaction is announced to the notifier afterwards.
func (s *State) Send(walletName string, receiver string, amount float64) (database.Tx, error) {
	tx, err := s.send(walletName, receiver, amount)
	if err != nil {
		return database.Tx{}, err
	}

	s.announce(tx)

	return tx, nil
}

func (s *State) send(walletName string, receiver string, amount float64) (database.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.registry.ByName(walletName)
	if !exists {
		return database.Tx{}, ErrUnknownWallet
	}

	recv := keys.Address(receiver)
	if !recv.IsAddress() {
		return database.Tx{}, ErrInvalidAddress
	}

	if amount <= 0 {
		return database.Tx{}, ErrInvalidAmount
	}

	// The ledger may not know the address yet when the wallet arrived
	// through a restore. Seed it from the cached balance once.
	balance, known := s.db.Balance(w.Address)
	if !known {
		balance = w.CachedBalance
		s.db.SetBalance(w.Address, balance)
	}

	fee := database.MinFee
	if balance < amount+fee {
		return database.Tx{}, &InsufficientFundsError{Balance: balance, Required: amount + fee}
	}

	tx, err := database.NewTx(w.Address, recv, amount, fee)
	if err != nil {
		return database.Tx{}, err
	}

	if err := tx.Validate(); err != nil {
		return database.Tx{}, fmt.Errorf("transaction invalid: %w", err)
	}

	s.db.ApplyTransaction(tx)
	s.refreshCachedLocked(tx.Sender, tx.Receiver)
	s.persistLocked()

	s.evHandler("state: send: tx[%s] amount[%v] fee[%v]", tx, amount, fee)

	return tx, nil
}

// Issue mints value to the receiver address from the reserved coinbase
// address. Issuance is capped so the value in circulation never exceeds
// the configured total supply.
func (s *State) Issue(receiver string, amount float64) (database.Tx, error) {
	tx, err := s.issue(receiver, amount)
	if err != nil {
		return database.Tx{}, err
	}

	s.announce(tx)

	return tx, nil
}

func (s *State) issue(receiver string, amount float64) (database.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recv := keys.Address(receiver)
	if !recv.IsAddress() {
		return database.Tx{}, ErrInvalidAddress
	}

	if amount <= 0 {
		return database.Tx{}, ErrInvalidAmount
	}

	if s.db.SumBalances()+amount > s.db.TotalSupply() {
		return database.Tx{}, ErrSupplyExhausted
	}

	tx, err := database.NewTx(keys.Coinbase, recv, amount, 0)
	if err != nil {
		return database.Tx{}, err
	}

	if err := tx.Validate(); err != nil {
		return database.Tx{}, fmt.Errorf("transaction invalid: %w", err)
	}

	s.db.ApplyTransaction(tx)
	s.refreshCachedLocked(tx.Receiver)
	s.persistLocked()

	s.evHandler("state: issue: tx[%s] amount[%v]", tx, amount)

	return tx, nil
}

// refreshCachedLocked mirrors the authoritative balances onto the wallet
// entries for the addresses that just changed.
func (s *State) refreshCachedLocked(addrs ...keys.Address) {
	for _, addr := range addrs {
		if balance, known := s.db.Balance(addr); known {
			s.registry.SetBalance(addr, balance)
		}
	}
}
