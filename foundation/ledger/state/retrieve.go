package state

import (
	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
)

// Stats is a read-only projection over the ledger and the registry,
// recomputed on request and never persisted.
type Stats struct {
	TotalBlocks       int     `json:"total_blocks"`
	TotalWallets      int     `json:"total_wallets"`
	PendingCount      int     `json:"pending_count"`
	TotalSupply       float64 `json:"total_supply"`
	Difficulty        int     `json:"difficulty"`
	MiningReward      float64 `json:"mining_reward"`
	CirculatingSupply float64 `json:"circulating_supply"`
}

// =============================================================================

// Wallets returns every registered wallet in insertion order.
func (s *State) Wallets() []registry.Wallet {
	return s.registry.List()
}

// WalletByName returns the wallet registered under the name.
func (s *State) WalletByName(name string) (registry.Wallet, bool) {
	return s.registry.ByName(name)
}

// WalletByAddress returns the wallet registered under the address.
func (s *State) WalletByAddress(addr keys.Address) (registry.Wallet, bool) {
	return s.registry.ByAddress(addr)
}

// Balance reports the spendable amount at the address. The ledger map is
// authoritative; a wallet's cached balance answers for addresses the
// ledger hasn't recorded yet; unknown addresses report zero.
func (s *State) Balance(addr keys.Address) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balanceLocked(addr)
}

func (s *State) balanceLocked(addr keys.Address) float64 {
	if balance, known := s.db.Balance(addr); known {
		return balance
	}

	if w, known := s.registry.ByAddress(addr); known {
		return w.CachedBalance
	}

	return 0
}

// =============================================================================

// Chain returns a copy of the finalized blocks in order.
func (s *State) Chain() []database.Block {
	return s.db.CopyChain()
}

// Pending returns a copy of the transactions awaiting finalization.
func (s *State) Pending() []database.Tx {
	return s.db.CopyPending()
}

// PendingCount returns the number of transactions awaiting finalization.
func (s *State) PendingCount() int {
	return s.db.PendingCount()
}

// Genesis returns the first block of the chain.
func (s *State) Genesis() (database.Block, bool) {
	chain := s.db.CopyChain()
	if len(chain) == 0 {
		return database.Block{}, false
	}

	return chain[0], true
}

// QueryStats computes the ledger wide counters. The circulating supply is
// the sum of all wallet cached balances.
func (s *State) QueryStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var circulating float64
	wallets := s.registry.List()
	for _, w := range wallets {
		circulating += w.CachedBalance
	}

	return Stats{
		TotalBlocks:       s.db.BlockCount(),
		TotalWallets:      len(wallets),
		PendingCount:      s.db.PendingCount(),
		TotalSupply:       s.db.TotalSupply(),
		Difficulty:        s.db.Difficulty(),
		MiningReward:      s.db.MiningReward(),
		CirculatingSupply: circulating,
	}
}
