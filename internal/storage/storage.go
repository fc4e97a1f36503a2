package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/kaa-events/internal/record"
)

// snapshotFile is the snapshot document's name inside the data directory.
const snapshotFile = "events.json"

// Snapshot is the persisted output of one run and the merge source for the
// next: the list source URL, the write timestamp, and the full ordered
// record list.
type Snapshot struct {
	SourceURL string           `json:"sourceUrl"`
	ScrapedAt string           `json:"scrapedAt"`
	Events    []*record.Record `json:"events"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make([]*record.Record, 0),
	}
}

// Storage handles persistence of announcement snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// SnapshotPath returns the path of the snapshot file
func (s *Storage) SnapshotPath() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// LoadSnapshot loads the previous run's snapshot. A missing or unparsable
// snapshot is treated as empty prior data, never as an error, so a first run
// and a corrupted file behave identically.
func (s *Storage) LoadSnapshot() *Snapshot {
	data, err := os.ReadFile(s.SnapshotPath())
	if err != nil {
		return NewSnapshot()
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return NewSnapshot()
	}

	if snapshot.Events == nil {
		snapshot.Events = make([]*record.Record, 0)
	}

	return &snapshot
}

// SaveSnapshot writes the snapshot, stamping ScrapedAt with the current UTC
// time. The document is written to a temporary file and renamed into place so
// the previous snapshot is replaced atomically.
func (s *Storage) SaveSnapshot(snapshot *Snapshot) error {
	snapshot.ScrapedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, snapshotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.SnapshotPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}
