package snapshot

import "sync"

// Memory represents the storage implementation for keeping the snapshot in
// memory only, used in tests and as the fallback when disk persistence
// fails. This implements the snapshot.Storage interface.
type Memory struct {
	mu    sync.Mutex
	snap  Snapshot
	saved bool
}

// NewMemory constructs an empty in memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save keeps the snapshot in memory.
func (m *Memory) Save(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = snap
	m.saved = true

	return nil
}

// Load returns the last saved snapshot. It reports false when nothing has
// been saved yet.
func (m *Memory) Load() (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snap, m.saved, nil
}
