// Package database handles the lower level support for maintaining the
// chain, the pending pool and the in memory balances of every address.
package database

import (
	"sync"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
)

// Defaults applied to a ledger when a snapshot doesn't carry the values.
const (
	DefaultDifficulty   = 4
	DefaultMiningReward = 50
	DefaultTotalSupply  = 21_750_000_000_000
)

// Database manages the canonical record: ordered blocks, the pending pool
// and the balances map. The balances map is the single source of truth for
// spendable amounts; wallet cached balances only mirror it.
type Database struct {
	mu sync.RWMutex

	chain    []Block
	pending  []Tx
	balances map[keys.Address]float64

	totalSupply  float64
	miningReward float64
	difficulty   int
}

// New constructs a database with the supply parameters in effect.
func New(difficulty int, miningReward float64, totalSupply float64) *Database {
	return &Database{
		balances:     make(map[keys.Address]float64),
		totalSupply:  totalSupply,
		miningReward: miningReward,
		difficulty:   difficulty,
	}
}

// =============================================================================

// Balance returns the spendable amount at the address and whether the
// ledger has an entry for it at all.
func (db *Database) Balance(addr keys.Address) (float64, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	balance, exists := db.balances[addr]

	return balance, exists
}

// ApplyTransaction performs the business logic for applying a validated
// transaction to the balances map and the pending pool. The debit and the
// credit are clamped to a floor of zero so no balance ever goes negative;
// system addresses issue value through the same clamp.
func (db *Database) ApplyTransaction(tx Tx) {
	db.mu.Lock()
	defer db.mu.Unlock()
	{
		sender := db.balances[tx.Sender] - (tx.Amount + tx.Fee)
		if sender < 0 {
			sender = 0
		}

		receiver := db.balances[tx.Receiver] + tx.Amount
		if receiver < 0 {
			receiver = 0
		}

		db.balances[tx.Sender] = sender
		db.balances[tx.Receiver] = receiver

		db.pending = append(db.pending, tx)
	}
}

// =============================================================================

// CopyChain makes a copy of the current chain.
func (db *Database) CopyChain() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain := make([]Block, len(db.chain))
	copy(chain, db.chain)

	return chain
}

// CopyPending makes a copy of the current pending pool.
func (db *Database) CopyPending() []Tx {
	db.mu.RLock()
	defer db.mu.RUnlock()

	pending := make([]Tx, len(db.pending))
	copy(pending, db.pending)

	return pending
}

// SetBalance writes a single balance entry, clamped to a floor of zero.
// Used to seed the ledger with a wallet's cached balance the first time
// the address transacts.
func (db *Database) SetBalance(addr keys.Address, balance float64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if balance < 0 {
		balance = 0
	}

	db.balances[addr] = balance
}

// SumBalances returns the total value currently held across all addresses.
func (db *Database) SumBalances() float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var sum float64
	for _, balance := range db.balances {
		sum += balance
	}

	return sum
}

// CopyBalances makes a copy of the current balances map.
func (db *Database) CopyBalances() map[keys.Address]float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	balances := make(map[keys.Address]float64, len(db.balances))
	for addr, balance := range db.balances {
		balances[addr] = balance
	}

	return balances
}

// BlockCount returns the number of blocks in the chain.
func (db *Database) BlockCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.chain)
}

// PendingCount returns the number of transactions awaiting finalization.
func (db *Database) PendingCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.pending)
}

// LatestBlock returns the last block of the chain.
func (db *Database) LatestBlock() (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.chain) == 0 {
		return Block{}, false
	}

	return db.chain[len(db.chain)-1], true
}

// TotalSupply returns the configured maximum supply.
func (db *Database) TotalSupply() float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.totalSupply
}

// MiningReward returns the reward paid per assembled block.
func (db *Database) MiningReward() float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.miningReward
}

// Difficulty returns the difficulty carried by the ledger.
func (db *Database) Difficulty() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.difficulty
}

// =============================================================================

// ReplaceChain swaps the chain wholesale, used when absorbing a snapshot.
func (db *Database) ReplaceChain(chain []Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.chain = chain
}

// ReplacePending swaps the pending pool wholesale, used when absorbing
// a snapshot.
func (db *Database) ReplacePending(pending []Tx) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.pending = pending
}

// ReplaceBalances swaps the balances map wholesale, used when absorbing a
// snapshot. Negative entries are clamped to zero on the way in.
func (db *Database) ReplaceBalances(balances map[keys.Address]float64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.balances = make(map[keys.Address]float64, len(balances))
	for addr, balance := range balances {
		if balance < 0 {
			balance = 0
		}
		db.balances[addr] = balance
	}
}

// ReplaceSupply swaps the supply parameters wholesale, used when absorbing
// a snapshot.
func (db *Database) ReplaceSupply(totalSupply float64, miningReward float64, difficulty int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.totalSupply = totalSupply
	db.miningReward = miningReward
	db.difficulty = difficulty
}
