package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
)

// MinFee is the lowest fee accepted on a transfer between user wallets.
// Transactions issued by a system address carry no fee requirement.
const MinFee = 0.1

// ErrFeeTooLow is returned when constructing a transaction whose fee is
// below the accepted minimum.
var ErrFeeTooLow = fmt.Errorf("fee below the minimum of %v", MinFee)

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	Sender    keys.Address `json:"sender"`    // Address the value is moving from.
	Receiver  keys.Address `json:"receiver"`  // Address receiving the value.
	Amount    float64      `json:"amount"`    // Monetary value moved by this transaction.
	Fee       float64      `json:"fee"`       // Fee paid on top of the amount by the sender.
	Timestamp float64      `json:"timestamp"` // Unix seconds with sub-second precision.
	TxID      string       `json:"tx_id"`     // Digest of the transactional fields.
	Signature string       `json:"signature"` // Integrity tag derived from the id, sender and timestamp.
}

// NewTx constructs a transaction between two addresses, stamping it with the
// current time and computing its id and integrity tag.
func NewTx(sender keys.Address, receiver keys.Address, amount float64, fee float64) (Tx, error) {
	if fee < MinFee && !sender.IsSystem() {
		return Tx{}, ErrFeeTooLow
	}

	tx := Tx{
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Fee:       fee,
		Timestamp: Timestamp(),
	}

	tx.TxID = tx.hashID()
	tx.Signature = signature.Sign(tx.TxID, string(tx.Sender), tx.Timestamp)

	return tx, nil
}

// Validate runs the acceptance checks over a transaction. The checks run
// in a fixed order and the first failure is returned.
func (tx Tx) Validate() error {
	if tx.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	if tx.Fee < 0 {
		return errors.New("fee must not be negative")
	}

	if tx.Sender == tx.Receiver {
		return errors.New("sender and receiver must differ")
	}

	if !tx.Sender.IsAddress() && !tx.Sender.IsSystem() {
		return fmt.Errorf("sender address %q is not properly formatted", tx.Sender)
	}

	if !tx.Receiver.IsAddress() && !tx.Receiver.IsSystem() {
		return fmt.Errorf("receiver address %q is not properly formatted", tx.Receiver)
	}

	if !signature.IsHash(tx.TxID) {
		return errors.New("transaction id is not a valid hash")
	}

	return nil
}

// hashID computes the transaction id over the canonical string forms of
// the transactional fields.
func (tx Tx) hashID() string {
	data := string(tx.Sender) +
		string(tx.Receiver) +
		signature.FormatDecimal(tx.Amount) +
		signature.FormatDecimal(tx.Fee) +
		signature.FormatDecimal(tx.Timestamp)

	return signature.Hash(data)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	id := tx.TxID
	if len(id) > 8 {
		id = id[:8]
	}

	return fmt.Sprintf("%s:%s", tx.Sender, id)
}

// =============================================================================

// Timestamp returns the current time as Unix seconds with millisecond
// precision, the canonical timestamp form used across the ledger.
func Timestamp() float64 {
	return float64(time.Now().UTC().UnixMilli()) / 1000
}
