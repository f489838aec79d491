// Package ledgergrp maintains the group of handlers for ledger access:
// transfers, issuance, chain queries and snapshot import/export.
package ledgergrp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goldstarcoin/ledger/business/web/errs"
	"github.com/goldstarcoin/ledger/foundation/events"
	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/state"
	"github.com/goldstarcoin/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Hub
}

// Send commits a transfer from a named wallet to a receiver address.
func (h Handlers) Send(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app sendTx
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("send", "traceid", v.TraceID, "wallet", app.Wallet, "receiver", app.Receiver, "amount", app.Amount)

	tx, err := h.State.Send(app.Wallet, app.Receiver, app.Amount)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, tx, http.StatusOK)
}

// Issue mints value to a receiver address from the coinbase.
func (h Handlers) Issue(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app issueTx
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("issue", "traceid", v.TraceID, "receiver", app.Receiver, "amount", app.Amount)

	tx, err := h.State.Issue(app.Receiver, app.Amount)
	if err != nil {
		return trust(err)
	}

	return web.Respond(ctx, w, tx, http.StatusOK)
}

// Pending returns the set of transactions awaiting finalization.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Pending(), http.StatusOK)
}

// Blocks returns the full chain in order.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Chain(), http.StatusOK)
}

// Genesis returns the first block of the chain.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, exists := h.State.Genesis()
	if !exists {
		return errs.NewTrusted(errors.New("chain is empty"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Stats returns the ledger wide counters.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.QueryStats(), http.StatusOK)
}

// Export returns the complete snapshot for download.
func (h Handlers) Export(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.ExportSnapshot(), http.StatusOK)
}

// Merge absorbs an externally supplied snapshot document.
func (h Handlers) Merge(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("merge snapshot", "traceid", v.TraceID, "bytes", len(data))

	if err := h.State.MergeExternal(data); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "snapshot merged",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide engine events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Subscribe(v.TraceID)
	defer h.Evts.Unsubscribe(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// trust maps the engine's user-correctable failures to HTTP status codes.
// Any error not in the table is treated as an integrity failure.
func trust(err error) error {
	var ife *state.InsufficientFundsError

	switch {
	case errors.Is(err, state.ErrInvalidAddress),
		errors.Is(err, state.ErrInvalidAmount),
		errors.Is(err, state.ErrSupplyExhausted),
		errors.Is(err, database.ErrFeeTooLow),
		errors.As(err, &ife):
		return errs.NewTrusted(err, http.StatusBadRequest)

	case errors.Is(err, state.ErrUnknownWallet):
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return err
}
