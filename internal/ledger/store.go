package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gofrs/flock"
)

// Store persists ledger state between runs. The flat JSON file below is the
// only backend; the seam exists so the runner never learns about the file.
type Store interface {
	// Load returns the persisted ids and the last-compaction timestamp.
	// It never fails: unreadable or corrupt state degrades to empty.
	Load() (ids []string, lastCleanup float64)
	Save(ids []string, lastCleanup float64) error
	Close() error
}

// FileStore keeps the ledger in a single JSON file. It accepts two shapes:
// the structured object {"jobs": [...], "last_cleanup": ts} and the legacy
// bare array of ids, which loads as if last_cleanup were zero.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore opens the ledger file and takes an advisory lock next to it,
// so two overlapping scheduled runs cannot interleave read-modify-write.
// Failing to take the lock because another run holds it is an error; a
// filesystem that cannot lock at all just logs and continues.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, lock: flock.New(path + ".lock")}
	locked, err := fs.lock.TryLock()
	if err != nil {
		log.Printf("⚠️ Could not lock %s: %v. Continuing without lock.", path, err)
		fs.lock = nil
	} else if !locked {
		return nil, fmt.Errorf("sent-jobs file %s is held by another run", path)
	}
	return fs, nil
}

func (fs *FileStore) Load() ([]string, float64) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Error loading sent jobs file: %v", err)
		}
		return nil, 0
	}

	var structured struct {
		Jobs        []any   `json:"jobs"`
		LastCleanup float64 `json:"last_cleanup"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		return idStrings(structured.Jobs), structured.LastCleanup
	}

	// legacy shape: a bare array of ids
	var legacy []any
	if err := json.Unmarshal(data, &legacy); err == nil {
		return idStrings(legacy), 0
	}

	log.Printf("⚠️ Error loading sent jobs file: not valid JSON, starting fresh")
	return nil, 0
}

func (fs *FileStore) Save(ids []string, lastCleanup float64) error {
	state := struct {
		Jobs        []string `json:"jobs"`
		LastCleanup float64  `json:"last_cleanup"`
	}{Jobs: ids, LastCleanup: lastCleanup}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sent jobs: %w", err)
	}

	// write-then-rename keeps a crash from leaving a half-written ledger
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write sent jobs: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace sent jobs file: %w", err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	if fs.lock == nil {
		return nil
	}
	return fs.lock.Unlock()
}

// idStrings normalizes ids that older ledgers stored as JSON numbers.
func idStrings(raw []any) []string {
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		switch t := v.(type) {
		case string:
			ids = append(ids, t)
		case float64:
			ids = append(ids, strconv.FormatFloat(t, 'f', -1, 64))
		}
	}
	return ids
}
