// Package snapshot maintains the serialized form of the entire ledger and
// wallet state, the single format used for local persistence and for
// import/export with other instances.
package snapshot

import (
	"encoding/json"

	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
)

// Storage interface represents the behavior required to be implemented by
// any package providing support for persisting and reloading snapshots.
type Storage interface {
	Save(snap Snapshot) error
	Load() (Snapshot, bool, error)
}

// =============================================================================

// Snapshot represents the fully populated state of a ledger instance. Every
// decoded snapshot passes through Decode exactly once, so the rest of the
// engine never deals with absent fields or aliases.
type Snapshot struct {
	Chain        []database.Block         `json:"chain"`
	Wallets      []registry.Wallet        `json:"wallets"`
	Pending      []database.Tx            `json:"pending_transactions"`
	Balances     map[keys.Address]float64 `json:"balances"`
	Difficulty   int                      `json:"difficulty"`
	MiningReward float64                  `json:"mining_reward"`
	TotalSupply  float64                  `json:"total_supply"`
}

// snapshotJSON is the loose wire form. Older and externally authored
// snapshots name the pending pool "mempool" and may omit any field.
type snapshotJSON struct {
	Chain        []database.Block         `json:"chain"`
	Wallets      []registry.Wallet        `json:"wallets"`
	Pending      []database.Tx            `json:"pending_transactions"`
	Mempool      []database.Tx            `json:"mempool"`
	Balances     map[keys.Address]float64 `json:"balances"`
	Difficulty   *int                     `json:"difficulty"`
	MiningReward *float64                 `json:"mining_reward"`
	TotalSupply  *float64                 `json:"total_supply"`
}

// Defaults returns the base state a snapshot is normalized against when
// there is no prior local state.
func Defaults() Snapshot {
	return Snapshot{
		Chain:        []database.Block{},
		Wallets:      []registry.Wallet{},
		Pending:      []database.Tx{},
		Balances:     map[keys.Address]float64{},
		Difficulty:   database.DefaultDifficulty,
		MiningReward: database.DefaultMiningReward,
		TotalSupply:  database.DefaultTotalSupply,
	}
}

// Decode parses raw snapshot JSON and normalizes it in a single step:
// fields the wire form provides replace the base values wholesale, fields
// it omits keep the base values, the mempool alias is folded in and
// negative balances are clamped to zero. The result is fully populated.
func Decode(data []byte, base Snapshot) (Snapshot, error) {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, err
	}

	snap := base

	if raw.Chain != nil {
		snap.Chain = raw.Chain
	}
	if raw.Wallets != nil {
		snap.Wallets = raw.Wallets
	}

	switch {
	case raw.Pending != nil:
		snap.Pending = raw.Pending
	case raw.Mempool != nil:
		snap.Pending = raw.Mempool
	}

	if raw.Balances != nil {
		balances := make(map[keys.Address]float64, len(raw.Balances))
		for addr, balance := range raw.Balances {
			if balance < 0 {
				balance = 0
			}
			balances[addr] = balance
		}
		snap.Balances = balances
	}

	if raw.Difficulty != nil {
		snap.Difficulty = *raw.Difficulty
	}
	if raw.MiningReward != nil {
		snap.MiningReward = *raw.MiningReward
	}
	if raw.TotalSupply != nil {
		snap.TotalSupply = *raw.TotalSupply
	}

	if snap.Chain == nil {
		snap.Chain = []database.Block{}
	}
	if snap.Wallets == nil {
		snap.Wallets = []registry.Wallet{}
	}
	if snap.Pending == nil {
		snap.Pending = []database.Tx{}
	}
	if snap.Balances == nil {
		snap.Balances = map[keys.Address]float64{}
	}

	return snap, nil
}
