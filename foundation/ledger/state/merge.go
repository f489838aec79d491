package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
	"github.com/goldstarcoin/ledger/foundation/ledger/snapshot"
)

// MergeExternal absorbs an externally supplied snapshot without discarding
// locally known wallets, then flushes the merged state.
func (s *State) MergeExternal(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mergeLocked(data); err != nil {
		return err
	}

	s.persistLocked()

	return nil
}

// mergeLocked applies the merge rules: fields the snapshot provides replace
// local state wholesale while omitted fields keep their local values;
// locally known wallets survive by address with their cached balances
// refreshed; funded addresses with no local wallet become observer wallets.
func (s *State) mergeLocked(data []byte) error {
	snap, err := snapshot.Decode(data, s.snapshotLocked())
	if err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	s.db.ReplaceChain(snap.Chain)
	s.db.ReplacePending(snap.Pending)
	s.db.ReplaceBalances(snap.Balances)
	s.db.ReplaceSupply(snap.TotalSupply, snap.MiningReward, snap.Difficulty)

	for _, w := range s.registry.List() {
		if balance, known := s.db.Balance(w.Address); known {
			s.registry.SetBalance(w.Address, balance)
		}
	}

	for addr, balance := range s.db.CopyBalances() {
		if addr.IsSystem() || !addr.IsAddress() {
			continue
		}
		if _, exists := s.registry.ByAddress(addr); exists {
			continue
		}

		w := registry.Wallet{
			Name:          observerName(addr),
			Address:       addr,
			CachedBalance: balance,
			CreatedAt:     time.Now().UTC(),
		}

		if err := s.registry.Add(w); err != nil {
			s.evHandler("state: merge: ERROR: observer wallet[%s]: %s: skipped", w.Name, err)
		}
	}

	s.evHandler("state: merge: blocks[%d] pending[%d] wallets[%d]",
		s.db.BlockCount(), s.db.PendingCount(), s.registry.Count())

	return nil
}

// ExportSnapshot returns the complete serializable state for download or
// transfer into another instance.
func (s *State) ExportSnapshot() snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// observerName derives a registry name for a wallet synthesized from an
// imported balance. The address payload keeps it unique.
func observerName(addr keys.Address) string {
	return "Observer " + strings.TrimPrefix(string(addr), keys.AddressPrefix)
}
