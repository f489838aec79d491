// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/goldstarcoin/ledger/app/services/engine/handlers/v1/ledgergrp"
	"github.com/goldstarcoin/ledger/app/services/engine/handlers/v1/walletgrp"
	"github.com/goldstarcoin/ledger/foundation/events"
	"github.com/goldstarcoin/ledger/foundation/ledger/state"
	"github.com/goldstarcoin/ledger/foundation/web"
	"go.uber.org/zap"
)

// version is the URL group for this set of routes.
const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Hub
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	wlt := walletgrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, version, "/wallets", wlt.Create)
	app.Handle(http.MethodPost, version, "/wallets/import/key", wlt.ImportKey)
	app.Handle(http.MethodPost, version, "/wallets/import/mnemonic", wlt.ImportMnemonic)
	app.Handle(http.MethodGet, version, "/wallets/list", wlt.List)
	app.Handle(http.MethodGet, version, "/wallets/balance/:address", wlt.QueryBalance)
	app.Handle(http.MethodGet, version, "/wallets/backup/:name", wlt.Backup)
	app.Handle(http.MethodPost, version, "/wallets/restore", wlt.Restore)
	app.Handle(http.MethodGet, version, "/mnemonic/generate", wlt.GenerateMnemonic)

	ldg := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", ldg.Events)
	app.Handle(http.MethodPost, version, "/tx/send", ldg.Send)
	app.Handle(http.MethodPost, version, "/tx/issue", ldg.Issue)
	app.Handle(http.MethodGet, version, "/tx/pending/list", ldg.Pending)
	app.Handle(http.MethodGet, version, "/ledger/blocks/list", ldg.Blocks)
	app.Handle(http.MethodGet, version, "/ledger/genesis", ldg.Genesis)
	app.Handle(http.MethodGet, version, "/ledger/stats", ldg.Stats)
	app.Handle(http.MethodGet, version, "/ledger/export", ldg.Export)
	app.Handle(http.MethodPost, version, "/ledger/merge", ldg.Merge)
}
