package walletgrp

import (
	"time"

	"github.com/goldstarcoin/ledger/business/sys/validate"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
)

// newWallet is the payload for creating a wallet.
type newWallet struct {
	Name       string `json:"name" validate:"required,min=3"`
	Passphrase string `json:"passphrase"`
}

// Validate checks the data in the model is considered clean.
func (app newWallet) Validate() error {
	return validate.Check(app)
}

// importKey is the payload for importing an existing private key.
type importKey struct {
	Name       string `json:"name" validate:"required,min=3"`
	PrivateKey string `json:"private_key" validate:"required,len=64,hexadecimal"`
	Passphrase string `json:"passphrase"`
}

// Validate checks the data in the model is considered clean.
func (app importKey) Validate() error {
	return validate.Check(app)
}

// importMnemonic is the payload for recovering a wallet from a phrase.
type importMnemonic struct {
	Name       string   `json:"name" validate:"required,min=3"`
	Words      []string `json:"words" validate:"required,len=12,dive,required"`
	Passphrase string   `json:"passphrase"`
}

// Validate checks the data in the model is considered clean.
func (app importMnemonic) Validate() error {
	return validate.Check(app)
}

// restoreWallet mirrors the wallet backup document.
type restoreWallet struct {
	Name              string `json:"name" validate:"required,min=3"`
	Address           string `json:"address" validate:"required"`
	EncodedPrivateKey string `json:"encoded_private_key"`
	PublicKey         string `json:"public_key"`
	IsEncrypted       bool   `json:"is_encrypted"`
}

// Validate checks the data in the model is considered clean.
func (app restoreWallet) Validate() error {
	return validate.Check(app)
}

// =============================================================================

// wallet is the API view of a registry entry. Key material stays out of
// the listing surfaces; the backup endpoint carries it.
type wallet struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PublicKey   string    `json:"public_key"`
	Balance     float64   `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	IsEncrypted bool      `json:"is_encrypted"`
	IsObserver  bool      `json:"is_observer"`
}

func toWallet(w registry.Wallet) wallet {
	return wallet{
		Name:        w.Name,
		Address:     string(w.Address),
		PublicKey:   w.PublicKey,
		Balance:     w.CachedBalance,
		CreatedAt:   w.CreatedAt,
		IsEncrypted: w.IsEncrypted,
		IsObserver:  w.IsObserver(),
	}
}

// balance is the response for a balance query.
type balance struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// phrase is the response for mnemonic generation.
type phrase struct {
	Words []string `json:"words"`
}
