package ledgergrp

import "github.com/goldstarcoin/ledger/business/sys/validate"

// sendTx is the payload for committing a transfer.
type sendTx struct {
	Wallet   string  `json:"wallet" validate:"required"`
	Receiver string  `json:"receiver" validate:"required,startswith=GSC1"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the data in the model is considered clean.
func (app sendTx) Validate() error {
	return validate.Check(app)
}

// issueTx is the payload for minting value from the coinbase.
type issueTx struct {
	Receiver string  `json:"receiver" validate:"required,startswith=GSC1"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the data in the model is considered clean.
func (app issueTx) Validate() error {
	return validate.Check(app)
}
