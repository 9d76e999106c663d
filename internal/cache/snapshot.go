// Package cache persists discovery results as JSON snapshots so the
// recovered address set can be listed without re-scanning the chain.
// The discovery engine itself never reads these files.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nocturnelabs/adascout/internal/address"
	"github.com/nocturnelabs/adascout/internal/discovery"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// SnapshotVersion is the current snapshot schema version. Older or newer
// versions are treated as corrupt and moved aside.
const SnapshotVersion = 1

// snapshotDirPerms restricts snapshot files to the owner.
const (
	snapshotDirPerms  = 0o700
	snapshotFilePerms = 0o600
)

// Snapshot is the persisted result of a discovery run.
type Snapshot struct {
	Version      int                        `json:"version"`
	UpdatedAt    time.Time                  `json:"updated_at"`
	Network      address.NetworkID          `json:"network"`
	AccountIndex uint32                     `json:"account_index"`
	LookAhead    int                        `json:"look_ahead"`
	Addresses    []discovery.GroupedAddress `json:"addresses"`
}

// FileStore reads and writes snapshots under a home directory, one file
// per account fingerprint.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at home/snapshots.
func NewFileStore(home string) *FileStore {
	return &FileStore{dir: filepath.Join(home, "snapshots")}
}

// Path returns the snapshot file path for an account fingerprint.
func (s *FileStore) Path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}

// Exists reports whether a snapshot exists for the fingerprint.
func (s *FileStore) Exists(fingerprint string) bool {
	_, err := os.Stat(s.Path(fingerprint))
	return err == nil
}

// Save writes the snapshot atomically: temp file then rename.
func (s *FileStore) Save(fingerprint string, snap *Snapshot) error {
	if err := os.MkdirAll(s.dir, snapshotDirPerms); err != nil {
		return scouterr.Wrap(err, "creating snapshot directory")
	}

	snap.Version = SnapshotVersion
	snap.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return scouterr.Wrap(err, "encoding snapshot")
	}

	path := s.Path(fingerprint)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, snapshotFilePerms); err != nil {
		return scouterr.Wrap(err, "writing snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return scouterr.Wrap(err, "replacing snapshot")
	}

	return nil
}

// Load reads the snapshot for a fingerprint. A missing file returns
// ErrSnapshotNotFound; an unreadable or wrong-version file is moved
// aside and reported as not found so the next run starts clean.
func (s *FileStore) Load(fingerprint string) (*Snapshot, error) {
	path := s.Path(fingerprint)

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is built from a hex fingerprint under our own dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, scouterr.ErrSnapshotNotFound
		}
		return nil, scouterr.Wrap(err, "reading snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.quarantine(path)
		return nil, scouterr.WithDetails(scouterr.ErrSnapshotNotFound,
			map[string]string{"reason": "snapshot was corrupt and has been moved aside"})
	}

	if snap.Version != SnapshotVersion {
		s.quarantine(path)
		return nil, scouterr.WithDetails(scouterr.ErrSnapshotNotFound,
			map[string]string{"reason": fmt.Sprintf("unsupported snapshot version %d", snap.Version)})
	}

	return &snap, nil
}

// List returns the fingerprints of all stored snapshots.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, scouterr.Wrap(err, "listing snapshots")
	}

	var fingerprints []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		fingerprints = append(fingerprints, name[:len(name)-len(".json")])
	}
	return fingerprints, nil
}

// quarantine moves a bad snapshot file aside rather than deleting it.
func (s *FileStore) quarantine(path string) {
	ts := time.Now().UTC().Format("20060102T150405Z")
	_ = os.Rename(path, path+".corrupt."+ts)
}
