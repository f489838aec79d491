// Package relay implements the fire-and-forget announcer that delivers
// committed transactions to an external message relay over a websocket.
// Delivery is best effort: failures are logged and swallowed, never
// surfaced to the operation that committed the transaction.
package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/goldstarcoin/ledger/foundation/ledger/database"
)

// writeWait is how long a single delivery may spend on the wire.
const writeWait = 10 * time.Second

// EventHandler defines a function that is called when delivery events
// occur inside the notifier.
type EventHandler func(v string, args ...any)

// =============================================================================

// Message is the payload delivered for every committed transaction.
type Message struct {
	Type        string      `json:"type"`
	Timestamp   float64     `json:"timestamp"`
	Transaction Transaction `json:"transaction"`
}

// Transaction carries the announced transaction fields.
type Transaction struct {
	TxID      string  `json:"tx_id"`
	Sender    string  `json:"sender"`
	Receiver  string  `json:"receiver"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	Timestamp float64 `json:"timestamp"`
	Signature string  `json:"signature"`
}

// NewMessage constructs the announcement payload for a transaction.
func NewMessage(tx database.Tx) Message {
	return Message{
		Type:      "TRANSACTION",
		Timestamp: database.Timestamp(),
		Transaction: Transaction{
			TxID:      tx.TxID,
			Sender:    string(tx.Sender),
			Receiver:  string(tx.Receiver),
			Amount:    tx.Amount,
			Fee:       tx.Fee,
			Timestamp: tx.Timestamp,
			Signature: tx.Signature,
		},
	}
}

// =============================================================================

// Notifier maintains a lazily dialed websocket connection to the relay.
// This implements the state.Notifier interface.
type Notifier struct {
	url string
	ev  EventHandler

	mu   sync.Mutex
	conn *websocket.Conn
}

// New constructs a notifier for the specified relay URL.
func New(url string, ev EventHandler) *Notifier {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	return &Notifier{
		url: url,
		ev:  ev,
	}
}

// Announce delivers the transaction announcement. Failures are logged and
// the connection is dropped so the next announce dials fresh.
func (n *Notifier) Announce(tx database.Tx) {
	if err := n.deliver(NewMessage(tx)); err != nil {
		n.ev("relay: announce: ERROR: %s: tx[%s]", err, tx.TxID)
		return
	}

	n.ev("relay: announce: delivered: tx[%s]", tx.TxID)
}

// Close shuts down any open connection to the relay.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil {
		return nil
	}

	err := n.conn.Close()
	n.conn = nil

	return err
}

// deliver writes one message, dialing if no connection is open.
func (n *Notifier) deliver(msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	conn, err := n.connection()
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := conn.WriteJSON(msg); err != nil {
		conn.Close()
		n.conn = nil
		return err
	}

	return nil
}

// connection returns the open connection, dialing the relay when needed.
func (n *Notifier) connection() (*websocket.Conn, error) {
	if n.conn != nil {
		return n.conn, nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(n.url, nil)
	if err != nil {
		return nil, err
	}

	n.conn = conn

	return conn, nil
}
