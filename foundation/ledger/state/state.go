// Package state is the core API for the ledger and implements all the
// business rules and processing for wallets, transfers and snapshots.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
	"github.com/goldstarcoin/ledger/foundation/ledger/snapshot"
)

// EventHandler defines a function that is called when events occur in the
// processing of wallet and ledger operations.
type EventHandler func(v string, args ...any)

// Notifier interface represents the behavior required to be implemented by
// any package providing support for announcing committed transactions to an
// external relay. The engine invokes it on its own goroutine after state has
// been committed; implementations own their failures and never report them
// back into the call path.
type Notifier interface {
	Announce(tx database.Tx)
}

// =============================================================================

// Config represents the configuration required to start the engine.
type Config struct {
	Store      snapshot.Storage
	ImportPath string
	EvHandler  EventHandler
	Notifier   Notifier
}

// State manages the wallet registry and the ledger database. All mutating
// operations run as mutually exclusive critical sections over both so no
// two mutations can interleave their balance reads and writes.
type State struct {
	mu sync.Mutex

	evHandler EventHandler
	notifier  Notifier

	store      snapshot.Storage
	memoryOnly bool

	db       *database.Database
	registry *registry.Registry
}

// New constructs the engine, loading prior state in order of preference:
// a one-shot external snapshot if an import path is provided, else the last
// local snapshot, else a freshly synthesized genesis chain.
func New(cfg Config) (*State, error) {
	if cfg.Store == nil {
		return nil, errors.New("config missing snapshot storage")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	s := State{
		evHandler: ev,
		notifier:  cfg.Notifier,
		store:     cfg.Store,
		db:        database.New(database.DefaultDifficulty, database.DefaultMiningReward, database.DefaultTotalSupply),
		registry:  registry.New(),
	}

	if err := s.load(cfg.ImportPath); err != nil {
		return nil, err
	}

	return &s, nil
}

// Shutdown cleanly brings the engine down, flushing a final snapshot so the
// next start resumes from the exact state of this session.
func (s *State) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	s.persistLocked()

	return nil
}

// load brings the engine to its starting state and flushes it back so a
// brand new instance leaves a snapshot behind immediately.
func (s *State) load(importPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported, err := s.absorbImportLocked(importPath)
	if err != nil {
		return err
	}

	if !imported {
		snap, found, err := s.store.Load()
		switch {
		case err != nil:

			// A snapshot exists but can't be read. Don't overwrite it with
			// a fresh one; run this session in memory only.
			s.evHandler("state: load: ERROR: %s: continuing in memory only", err)
			s.memoryOnly = true
			snap = snapshot.Defaults()

		case !found:
			snap = snapshot.Defaults()
		}

		s.restoreLocked(snap)
	}

	// A brand new instance starts with a synthesized genesis block.
	if s.db.BlockCount() == 0 {
		block := database.Genesis(s.db.Difficulty(), s.db.MiningReward())
		s.db.ReplaceChain([]database.Block{block})
		s.evHandler("state: load: genesis block synthesized: hash[%s]", block.Hash)
	}

	s.persistLocked()

	return nil
}

// absorbImportLocked checks for a one-shot external snapshot, absorbs it
// under the merge rules and clears the marker so the import happens once.
func (s *State) absorbImportLocked(importPath string) (bool, error) {
	if importPath == "" {
		return false, nil
	}

	data, err := os.ReadFile(importPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		s.evHandler("state: import: ERROR: %s: skipping import", err)
		return false, nil
	}

	if err := s.mergeLocked(data); err != nil {
		return false, fmt.Errorf("import snapshot %q: %w", importPath, err)
	}

	// Move the file aside so the import is not replayed on the next start.
	if err := os.Rename(importPath, importPath+".imported"); err != nil {
		s.evHandler("state: import: ERROR: clearing marker: %s", err)
	}

	s.evHandler("state: import: absorbed external snapshot: path[%s]", importPath)

	return true, nil
}

// restoreLocked applies a fully normalized snapshot to the database and the
// wallet registry. Used for plain local loads, where the wallets array is
// authoritative.
func (s *State) restoreLocked(snap snapshot.Snapshot) {
	s.db.ReplaceChain(snap.Chain)
	s.db.ReplacePending(snap.Pending)
	s.db.ReplaceBalances(snap.Balances)
	s.db.ReplaceSupply(snap.TotalSupply, snap.MiningReward, snap.Difficulty)

	for _, w := range snap.Wallets {
		if err := s.registry.Add(w); err != nil {
			s.evHandler("state: restore: ERROR: wallet[%s]: %s: skipped", w.Name, err)
		}
	}
}

// persistLocked flushes the current state through the snapshot store. A
// write failure is logged and flips the engine to memory only operation
// for the rest of the session; it never fails the triggering call.
func (s *State) persistLocked() {
	if s.memoryOnly {
		return
	}

	if err := s.store.Save(s.snapshotLocked()); err != nil {
		s.evHandler("state: persist: ERROR: %s: continuing in memory only", err)
		s.memoryOnly = true
	}
}

// snapshotLocked assembles the full serializable state.
func (s *State) snapshotLocked() snapshot.Snapshot {
	return snapshot.Snapshot{
		Chain:        s.db.CopyChain(),
		Wallets:      s.registry.List(),
		Pending:      s.db.CopyPending(),
		Balances:     s.db.CopyBalances(),
		Difficulty:   s.db.Difficulty(),
		MiningReward: s.db.MiningReward(),
		TotalSupply:  s.db.TotalSupply(),
	}
}

// announce hands a committed transaction to the external notifier on its
// own goroutine. Delivery is best effort and never affects committed state.
func (s *State) announce(tx database.Tx) {
	if s.notifier == nil {
		return
	}

	go s.notifier.Announce(tx)
}
