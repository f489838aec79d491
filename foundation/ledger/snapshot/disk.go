package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk represents the storage implementation for keeping the snapshot in a
// single JSON file on disk. This implements the snapshot.Storage interface.
type Disk struct {
	path string
}

// NewDisk constructs a disk store writing to the specified file path,
// creating the parent directory if needed.
func NewDisk(path string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &Disk{path: path}, nil
}

// Save writes the snapshot to disk. The write goes to a temporary file in
// the same directory first and is moved into place with a rename, so a
// crash mid-write never leaves a truncated snapshot behind.
func (d *Disk) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp", d.path)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmp, d.path)
}

// Load reads the last saved snapshot from disk. It reports false without
// error when no snapshot has been written yet.
func (d *Disk) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}

	snap, err := Decode(data, Defaults())
	if err != nil {
		return Snapshot{}, false, err
	}

	return snap, true, nil
}
