// Package walletgrp maintains the group of handlers for wallet access.
package walletgrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/goldstarcoin/ledger/business/web/errs"
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/mnemonic"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
	"github.com/goldstarcoin/ledger/foundation/ledger/state"
	"github.com/goldstarcoin/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of wallet endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Create generates a new wallet under the provided name.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app newWallet
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("create wallet", "traceid", v.TraceID, "name", app.Name)

	wlt, err := h.State.CreateWallet(app.Name, app.Passphrase)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, toWallet(wlt), http.StatusCreated)
}

// ImportKey registers a wallet for an existing private key.
func (h Handlers) ImportKey(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app importKey
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("import wallet", "traceid", v.TraceID, "name", app.Name)

	wlt, err := h.State.ImportWalletFromKey(app.Name, app.PrivateKey, app.Passphrase)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, toWallet(wlt), http.StatusCreated)
}

// ImportMnemonic recovers a wallet from a 12 word phrase.
func (h Handlers) ImportMnemonic(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app importMnemonic
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("recover wallet", "traceid", v.TraceID, "name", app.Name)

	wlt, err := h.State.ImportWalletFromMnemonic(app.Name, app.Words, app.Passphrase)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, toWallet(wlt), http.StatusCreated)
}

// List returns every registered wallet.
func (h Handlers) List(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	wallets := h.State.Wallets()

	out := make([]wallet, len(wallets))
	for i, wlt := range wallets {
		out[i] = toWallet(wlt)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// QueryBalance returns the spendable amount at the address. Unknown
// addresses report zero.
func (h Handlers) QueryBalance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr := web.Param(r, "address")

	resp := balance{
		Address: addr,
		Balance: h.State.Balance(keys.Address(addr)),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Backup returns the restorable subset of the named wallet.
func (h Handlers) Backup(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	name := web.Param(r, "name")

	bkp, err := h.State.BackupWallet(name)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, bkp, http.StatusOK)
}

// Restore re-registers a wallet from a backup document.
func (h Handlers) Restore(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app restoreWallet
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("restore wallet", "traceid", v.TraceID, "name", app.Name)

	wlt, err := h.State.RestoreWallet(registry.Backup{
		Name:              app.Name,
		Address:           keys.Address(app.Address),
		EncodedPrivateKey: app.EncodedPrivateKey,
		PublicKey:         app.PublicKey,
		IsEncrypted:       app.IsEncrypted,
	})
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, toWallet(wlt), http.StatusCreated)
}

// GenerateMnemonic produces a fresh 12 word recovery phrase.
func (h Handlers) GenerateMnemonic(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	words, err := h.State.GenerateMnemonic()
	if err != nil {
		return err
	}

	resp := phrase{
		Words: words,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// trust maps the engine's user-correctable failures to HTTP status codes.
// Any error not in the table is treated as an integrity failure.
func trust(err error) error {
	switch {
	case errors.Is(err, registry.ErrInvalidName),
		errors.Is(err, keys.ErrInvalidKeyFormat),
		errors.Is(err, mnemonic.ErrInvalidMnemonic),
		errors.Is(err, state.ErrInvalidAddress):
		return errs.NewTrusted(err, http.StatusBadRequest)

	case errors.Is(err, registry.ErrDuplicateName),
		errors.Is(err, registry.ErrDuplicateAddress),
		errors.Is(err, state.ErrAddressCollision):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.Is(err, state.ErrUnknownWallet):
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return err
}
